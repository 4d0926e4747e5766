package schema

const (
	DayListCollection = "ChinaDayList"
)

// DayListRecord - national summary of one day
type DayListRecord struct {
	Confirm  int    `json:"confirm" bson:"confirm"`
	Suspect  int    `json:"suspect" bson:"suspect"`
	Dead     int    `json:"dead" bson:"dead"`
	Heal     int    `json:"heal" bson:"heal"`
	DeadRate string `json:"dead_rate" bson:"deadrate"`
	HealRate string `json:"heal_rate" bson:"healrate"`
	Date     string `json:"date" bson:"date"`
}
