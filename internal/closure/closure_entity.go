package closure

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindHoliday  = "holiday"
	KindShutdown = "shutdown"
)

const (
	ExceptionStatusPending  = "pending"
	ExceptionStatusApproved = "approved"
	ExceptionStatusRejected = "rejected"
)

// CompanyClosure is a date span the whole organization is off. A nil OrgID
// marks a global holiday visible to every tenant; only org-owned closures
// can be deleted by that org.
type CompanyClosure struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrgID     *uuid.UUID `gorm:"type:uuid;index:idx_closures_org_start"`
	StartDate time.Time  `gorm:"type:date;not null;index:idx_closures_org_start"`
	EndDate   time.Time  `gorm:"type:date;not null"`
	Reason    string     `gorm:"type:varchar(200);not null"`
	Kind      string     `gorm:"type:varchar(20);not null;default:'shutdown'"`

	AutoEnroll      bool `gorm:"not null;default:false"`
	AllowExceptions bool `gorm:"not null;default:true"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClosureException is an employee's request to work through a closure.
// EmployeeName is a snapshot taken at submission time.
type ClosureException struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClosureID    uuid.UUID `gorm:"type:uuid;not null;index:idx_exceptions_closure_employee"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_exceptions_closure_employee"`
	EmployeeName string    `gorm:"type:varchar(160);not null"`
	OrgID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason       string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending'"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
