package balance

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceRow is a balance joined with employee and leave type display data.
type BalanceRow struct {
	LeaveBalance
	EmployeeName   string
	LeaveTypeName  string
	LeaveTypeColor string
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	EnsureForType(ctx context.Context, b *LeaveBalance) error
	Debit(ctx context.Context, employeeID, orgID, leaveTypeID string, year int, amount decimal.Decimal) error
	ListForOrg(ctx context.Context, orgID string, year int, employeeID *string) ([]BalanceRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// EnsureForType is the idempotent half of the upsert pair: insert the row if
// the (employee, type, year) key is free, otherwise leave used_days alone.
func (r *repository) EnsureForType(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "leave_type_id"},
				{Name: "year"},
			},
			DoNothing: true,
		}).
		Create(b).Error
}

// Debit increments used_days in one statement. The upsert creates a zero
// entitlement row when the balance was never provisioned, matching the
// "find-or-create is the caller's responsibility" contract without a
// read-modify-write window.
func (r *repository) Debit(ctx context.Context, employeeID, orgID, leaveTypeID string, year int, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO leave_balances (id, employee_id, org_id, leave_type_id, year, total_days, used_days, created_at, updated_at)
VALUES (gen_random_uuid(), ?, ?, ?, ?, 0, ?, NOW(), NOW())
ON CONFLICT (employee_id, leave_type_id, year)
DO UPDATE SET
	used_days = leave_balances.used_days + EXCLUDED.used_days,
	updated_at = NOW()
`, employeeID, orgID, leaveTypeID, year, amount).Error
}

func (r *repository) ListForOrg(ctx context.Context, orgID string, year int, employeeID *string) ([]BalanceRow, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Select(`leave_balances.*,
			COALESCE(employees.full_name, '') AS employee_name,
			COALESCE(leave_types.name, '') AS leave_type_name,
			COALESCE(leave_types.color, '#666') AS leave_type_color`).
		Joins("LEFT JOIN employees ON employees.id = leave_balances.employee_id").
		Joins("LEFT JOIN leave_types ON leave_types.id = leave_balances.leave_type_id").
		Where("leave_balances.org_id = ?", orgID).
		Where("leave_balances.year = ?", year)

	if employeeID != nil && *employeeID != "" {
		db = db.Where("leave_balances.employee_id = ?", *employeeID)
	}

	var rows []BalanceRow
	err := db.Order("employee_name ASC, leave_balances.leave_type_id ASC").Scan(&rows).Error
	return rows, err
}
