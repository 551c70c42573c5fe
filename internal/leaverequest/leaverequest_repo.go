package leaverequest

import (
	"context"
	"errors"
	"time"

	"powerleave/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfNoOverlap(ctx context.Context, l *LeaveRequest) (bool, error)
	CreateBatch(ctx context.Context, ls []LeaveRequest) error
	FindByIDAndOrg(ctx context.Context, orgID, id string) (*LeaveRequest, error)
	FindAllByOrg(ctx context.Context, orgID string, f ListLeaveRequestsFilter) ([]LeaveRequest, int64, error)
	MarkReviewed(ctx context.Context, orgID, id, status, reviewerID string, at time.Time) (int64, error)
	DeleteByClosure(ctx context.Context, closureID string) error
	DeleteClosureGenerated(ctx context.Context, closureID, employeeID string) (int64, error)
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

// CreateIfNoOverlap inserts the request only when no pending or approved
// request of the same employee intersects the closed interval
// [start_date, end_date]. Check and insert are one statement, so two
// concurrent submissions cannot both pass a separate pre-check. Returns
// false when the insert was suppressed by an existing overlap.
func (r *repository) CreateIfNoOverlap(ctx context.Context, l *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
INSERT INTO leave_requests (
	id, employee_id, employee_name, org_id, leave_type_id, leave_type_name,
	start_date, end_date, day_count, hours_per_day, notes, status,
	is_closure_generated, created_at, updated_at
)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, NOW(), NOW()
WHERE NOT EXISTS (
	SELECT 1 FROM leave_requests
	WHERE employee_id = ?
		AND deleted_at IS NULL
		AND status IN ('pending', 'approved')
		AND start_date <= ? AND end_date >= ?
)
`,
		l.ID, l.EmployeeID, l.EmployeeName, l.OrgID, l.LeaveTypeID, l.LeaveTypeName,
		l.StartDate, l.EndDate, l.DayCount, l.HoursPerDay, l.Notes, l.Status,
		l.EmployeeID, l.EndDate, l.StartDate,
	)
	if res.Error != nil {
		// A unique or exclusion constraint on the employee/date-range slot
		// reports the same business fact as the NOT EXISTS guard.
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreateBatch(ctx context.Context, ls []LeaveRequest) error {
	if len(ls) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ls).Error
}

func (r *repository) FindByIDAndOrg(ctx context.Context, orgID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByOrg(ctx context.Context, orgID string, f ListLeaveRequestsFilter) ([]LeaveRequest, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(orgID))

	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.EmployeeID != "" {
		db = db.Where("employee_id = ?", f.EmployeeID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var requests []LeaveRequest
	err := db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, total, err
}

// MarkReviewed is a compare-and-swap: the row only moves out of pending
// once. A second reviewer racing the first sees zero rows affected.
func (r *repository) MarkReviewed(ctx context.Context, orgID, id, status, reviewerID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
		})
	return res.RowsAffected, res.Error
}

// DeleteByClosure removes every request the closure generated, whatever its
// state. Soft delete keeps history readable for audits.
func (r *repository) DeleteByClosure(ctx context.Context, closureID string) error {
	return r.db.WithContext(ctx).
		Where("closure_id = ?", closureID).
		Delete(&LeaveRequest{}).Error
}

func (r *repository) DeleteClosureGenerated(ctx context.Context, closureID, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("closure_id = ?", closureID).
		Where("employee_id = ?", employeeID).
		Where("is_closure_generated = ?", true).
		Delete(&LeaveRequest{})
	return res.RowsAffected, res.Error
}
