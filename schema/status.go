package schema

const (
	DayStatusCollection = "day_status"
)

type CollectStatus string

const (
	StatusCollecting CollectStatus = "collecting"
	StatusComplete   CollectStatus = "complete"
)

// DayStatus - collect progress of a day. City records of a day are trusted
// only when the status is complete.
type DayStatus struct {
	Day         string        `json:"day" bson:"day"`
	Status      CollectStatus `json:"status" bson:"status"`
	RunID       string        `json:"run_id" bson:"run_id"`
	Count       int64         `json:"count" bson:"count"`
	StartedAt   int64         `json:"started_at" bson:"started_at"`
	CompletedAt int64         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// Complete reports if the day has been fully collected
func (s *DayStatus) Complete() bool {
	return s != nil && s.Status == StatusComplete
}
