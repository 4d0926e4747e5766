package aggregator

import (
	"bytes"
	"encoding/json"
	"io/ioutil"

	"github.com/bitmark-inc/ncp-map/schema"
)

// NameValue - a labelled count fed to the charts
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Totals struct {
	Mainland int `json:"mainland"`
	Region   int `json:"region"`
}

// RegionIndex - composed name to [lon, lat]
type RegionIndex map[string][2]float64

// Partition - city records split by the designated region
type Partition struct {
	Index           RegionIndex `json:"index"`
	MainlandConfirm []NameValue `json:"mainland_confirm"`
	RegionConfirm   []NameValue `json:"region_confirm"`
	Totals          Totals      `json:"totals"`
}

// PartitionAndSum splits records into the designated region and the rest.
// Mainland entries are labelled with the composed name, region entries with
// the bare city name. Both lists keep the order of records.
func PartitionAndSum(records []schema.CityRecord, region string) Partition {
	p := Partition{
		Index:           make(RegionIndex, len(records)),
		MainlandConfirm: make([]NameValue, 0, len(records)),
		RegionConfirm:   make([]NameValue, 0),
	}

	for _, r := range records {
		p.Index[r.ComposedName()] = [2]float64{r.Longitude, r.Latitude}

		if r.Province == region {
			p.RegionConfirm = append(p.RegionConfirm, NameValue{Name: r.City, Value: r.TotalConfirm})
			p.Totals.Region += r.TotalConfirm
		} else {
			p.MainlandConfirm = append(p.MainlandConfirm, NameValue{Name: r.ComposedName(), Value: r.TotalConfirm})
			p.Totals.Mainland += r.TotalConfirm
		}
	}

	return p
}

// WriteRegionIndex writes the index as a JSON object, non ASCII names are
// kept as they are
func WriteRegionIndex(file string, index RegionIndex) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(index); err != nil {
		return err
	}
	return ioutil.WriteFile(file, buf.Bytes(), 0644)
}

func ReadRegionIndex(file string) (RegionIndex, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var index RegionIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return index, nil
}
