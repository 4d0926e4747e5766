package ncp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrNoCountry = fmt.Errorf("no country in area tree")

// Rate is reported as either a string or a number depending on the API
// revision, it is kept in its textual form
type Rate string

func (r *Rate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Rate(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = Rate(n.String())
	return nil
}

type Today struct {
	IsUpdated bool `json:"isUpdated"`
	Confirm   int  `json:"confirm"`
}

type Total struct {
	Confirm int `json:"confirm"`
	Heal    int `json:"heal"`
	Dead    int `json:"dead"`
}

// Area - a node of the area tree, country, province and city share the
// same shape
type Area struct {
	Name     string `json:"name"`
	Today    Today  `json:"today"`
	Total    Total  `json:"total"`
	Children []Area `json:"children"`
}

// DaySummary - national numbers of one day
type DaySummary struct {
	Confirm  int    `json:"confirm"`
	Suspect  int    `json:"suspect"`
	Dead     int    `json:"dead"`
	Heal     int    `json:"heal"`
	DeadRate Rate   `json:"deadRate"`
	HealRate Rate   `json:"healRate"`
	Date     string `json:"date"`
}

// Snapshot - decoded content of the envelope data string
type Snapshot struct {
	AreaTree     []Area       `json:"areaTree"`
	ChinaDayList []DaySummary `json:"chinaDayList"`
}

// Envelope - outer response, data holds the snapshot as a JSON string
type Envelope struct {
	Ret  int    `json:"ret"`
	Data string `json:"data"`
}

// Country returns the country node with the given name, or the first node
// of the tree when name is empty
func (s *Snapshot) Country(name string) (Area, error) {
	if len(s.AreaTree) == 0 {
		return Area{}, ErrNoCountry
	}

	if name == "" {
		return s.AreaTree[0], nil
	}

	for _, a := range s.AreaTree {
		if a.Name == name {
			return a, nil
		}
	}
	return Area{}, fmt.Errorf("%w: %s", ErrNoCountry, name)
}

// DecodeSnapshot decodes the nested data string of an envelope
func DecodeSnapshot(env Envelope) (*Snapshot, error) {
	if env.Data == "" {
		return nil, fmt.Errorf("%w: empty data", ErrSnapshotDecode)
	}

	var s Snapshot
	if err := json.Unmarshal([]byte(env.Data), &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotDecode, err)
	}

	for i := range s.AreaTree {
		normalizeArea(&s.AreaTree[i])
	}
	return &s, nil
}

func normalizeArea(a *Area) {
	a.Name = NormalizeName(a.Name)
	for i := range a.Children {
		normalizeArea(&a.Children[i])
	}
}

// NormalizeName trims spaces and brings a region name into NFC form so the
// composed names stay stable across snapshots
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
