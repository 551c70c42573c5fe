package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance tracks consumed entitlement per (employee, type, year).
// The unique index is what makes find-or-create and the debit upsert safe
// under concurrent callers; no separate balance row can appear for the
// same key.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_balances_employee_type_year"`
	OrgID       uuid.UUID `gorm:"type:uuid;not null;index:idx_balances_org_year"`
	LeaveTypeID string    `gorm:"type:varchar(40);not null;uniqueIndex:ux_balances_employee_type_year"`
	Year        int       `gorm:"not null;uniqueIndex:ux_balances_employee_type_year;index:idx_balances_org_year"`

	TotalDays int `gorm:"type:int;not null;default:0"`
	// used_days carries hour fractions (a 4-hour day debits 0.5), so it is
	// exact decimal, not float.
	UsedDays decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
