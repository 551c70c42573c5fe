package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest is a single time-off request. EmployeeName and LeaveTypeName
// are snapshots taken at creation time; later renames do not rewrite history.
type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_employee_dates"`
	EmployeeName  string    `gorm:"type:varchar(160);not null"`
	OrgID         uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_org_status"`
	LeaveTypeID   string    `gorm:"type:varchar(40);not null"`
	LeaveTypeName string    `gorm:"type:varchar(80);not null"`

	StartDate   time.Time `gorm:"type:date;not null;index:idx_requests_employee_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_requests_employee_dates"`
	DayCount    int       `gorm:"type:int;not null;default:1"`
	HoursPerDay int       `gorm:"type:int;not null;default:8"`
	Notes       string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_requests_org_status"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time

	// Set only on requests synthesized by the closure engine.
	ClosureID          *uuid.UUID `gorm:"type:uuid;index"`
	IsClosureGenerated bool       `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
