package schema

import "fmt"

// CityRecord - flat per city case count of a single day
type CityRecord struct {
	Country      string  `json:"country" bson:"country"`
	Province     string  `json:"province" bson:"province"`
	City         string  `json:"city" bson:"city"`
	IsUpdated    bool    `json:"is_updated" bson:"isupdated"`
	TodayConfirm int     `json:"today_confirm" bson:"today_confirm"`
	TotalConfirm int     `json:"total_confirm" bson:"total_confirm"`
	TotalHeal    int     `json:"total_heal" bson:"total_heal"`
	TotalDead    int     `json:"total_dead" bson:"total_dead"`
	Longitude    float64 `json:"lon" bson:"pos_lon"`
	Latitude     float64 `json:"lat" bson:"pos_lat"`
}

// ComposedName - province name followed by city name, the key of the
// coordinate index
func (c CityRecord) ComposedName() string {
	return c.Province + c.City
}

// Coordinate - a longitude, latitude pair
type Coordinate struct {
	Longitude float64 `json:"lon" bson:"lon"`
	Latitude  float64 `json:"lat" bson:"lat"`
}

// Valid returns false for the zero sentinel returned by geocoders when
// nothing was found
func (c Coordinate) Valid() bool {
	return c.Longitude != 0 && c.Latitude != 0
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Longitude, c.Latitude)
}
