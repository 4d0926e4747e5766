package utils

import (
	"fmt"
	"strings"
	"time"
)

var locations = make(map[string]*time.Location)

func init() {
	for offset := -12; offset <= 14; offset++ {
		name := fmt.Sprintf("GMT%+d", offset)
		locations[name] = time.FixedZone(name, offset*int(time.Hour/time.Second))
	}
}

// GetLocation returns the fixed zone of a GMT+X timezone name, nil when the
// name is unknown
func GetLocation(timezone string) *time.Location {
	return locations[strings.ToUpper(timezone)]
}
