package events

import "time"

const LeaveRequestReviewedTopic = "leave.request.reviewed.v1"

type LeaveRequestReviewedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	OrgID       string    `json:"org_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	Status      string    `json:"status"`
	DaysDebited string    `json:"days_debited,omitempty"`
	ReviewedBy  string    `json:"reviewed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
