package leavetype

import (
	"time"

	"github.com/google/uuid"
)

// BaselineTypeID is the category the closure engine books auto-enrolled
// leave against.
const BaselineTypeID = "vacation"

// LeaveType is a leave category. Global types (OrgID nil) ship with the
// product and keep slug ids; org-owned custom types get uuid ids.
type LeaveType struct {
	ID          string     `gorm:"type:varchar(40);primaryKey"`
	Name        string     `gorm:"type:varchar(80);not null"`
	Color       string     `gorm:"type:varchar(9);not null;default:'#22C55E'"`
	DaysPerYear int        `gorm:"type:int;not null;default:26"`
	OrgID       *uuid.UUID `gorm:"type:uuid;index"`
	IsCustom    bool       `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultTypes is the global catalog ensured at startup when the table is
// empty. Entitlements are annual day budgets, not accrued over time.
func DefaultTypes() []LeaveType {
	return []LeaveType{
		{ID: "vacation", Name: "Vacation", Color: "#22C55E", DaysPerYear: 26},
		{ID: "personal", Name: "Personal", Color: "#3B82F6", DaysPerYear: 32},
		{ID: "medical", Name: "Medical", Color: "#EF4444", DaysPerYear: 180},
		{ID: "parental", Name: "Parental", Color: "#A855F7", DaysPerYear: 150},
	}
}
