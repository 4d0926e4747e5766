package aggregator

import "github.com/bitmark-inc/ncp-map/schema"

// DaySeries - column view of the national day list for the trend line
type DaySeries struct {
	Dates   []string `json:"dates"`
	Confirm []int    `json:"confirm"`
	Dead    []int    `json:"dead"`
	Heal    []int    `json:"heal"`
}

// NewDaySeries builds the columns in record order. With dedup a date keeps
// its first position and the values of its last record.
func NewDaySeries(records []schema.DayListRecord, dedup bool) DaySeries {
	s := DaySeries{
		Dates:   make([]string, 0, len(records)),
		Confirm: make([]int, 0, len(records)),
		Dead:    make([]int, 0, len(records)),
		Heal:    make([]int, 0, len(records)),
	}

	position := make(map[string]int)
	for _, r := range records {
		if dedup {
			if i, ok := position[r.Date]; ok {
				s.Confirm[i] = r.Confirm
				s.Dead[i] = r.Dead
				s.Heal[i] = r.Heal
				continue
			}
			position[r.Date] = len(s.Dates)
		}

		s.Dates = append(s.Dates, r.Date)
		s.Confirm = append(s.Confirm, r.Confirm)
		s.Dead = append(s.Dead, r.Dead)
		s.Heal = append(s.Heal, r.Heal)
	}
	return s
}

func (s DaySeries) Len() int {
	return len(s.Dates)
}
