package events

import "time"

const ClosureCreatedTopic = "leave.closure.created.v1"

type ClosureCreatedEvent struct {
	EventType    string    `json:"event_type"`
	ClosureID    string    `json:"closure_id"`
	OrgID        string    `json:"org_id"`
	Kind         string    `json:"kind"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	AutoEnrolled int       `json:"auto_enrolled"`
	CreatedBy    string    `json:"created_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
