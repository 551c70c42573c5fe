package closure

import (
	"context"
	"time"

	"powerleave/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=closure_repo.go -destination=mock/closure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, c *CompanyClosure) error
	FindVisibleByID(ctx context.Context, orgID, id string) (*CompanyClosure, error)
	FindByIDAndOrg(ctx context.Context, orgID, id string) (*CompanyClosure, error)
	FindAllVisible(ctx context.Context, orgID string, year int) ([]CompanyClosure, error)
	Delete(ctx context.Context, orgID, id string) (int64, error)

	CreateException(ctx context.Context, e *ClosureException) error
	FindExceptionByIDAndOrg(ctx context.Context, orgID, id string) (*ClosureException, error)
	FindAllExceptionsByOrg(ctx context.Context, orgID, employeeID string) ([]ClosureException, error)
	HasOpenException(ctx context.Context, closureID, employeeID string) (bool, error)
	MarkExceptionReviewed(ctx context.Context, orgID, id, status, reviewerID string, at time.Time) (int64, error)
	DeleteExceptionsByClosure(ctx context.Context, closureID string) error
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

func (r *repository) Create(ctx context.Context, c *CompanyClosure) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindVisibleByID(ctx context.Context, orgID, id string) (*CompanyClosure, error) {
	var c CompanyClosure
	err := r.db.WithContext(ctx).
		Scopes(tenant.ScopeShared(orgID)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByIDAndOrg(ctx context.Context, orgID, id string) (*CompanyClosure, error) {
	var c CompanyClosure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAllVisible(ctx context.Context, orgID string, year int) ([]CompanyClosure, error) {
	var closures []CompanyClosure
	q := r.db.WithContext(ctx).Scopes(tenant.ScopeShared(orgID))
	if year > 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("start_date >= ? AND start_date < ?", from, to)
	}
	err := q.Order("start_date ASC").Find(&closures).Error
	return closures, err
}

// Delete removes the closure row itself. Only org-owned closures match;
// global holidays are never deletable through a tenant.
func (r *repository) Delete(ctx context.Context, orgID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		Delete(&CompanyClosure{})
	return res.RowsAffected, res.Error
}

func (r *repository) CreateException(ctx context.Context, e *ClosureException) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindExceptionByIDAndOrg(ctx context.Context, orgID, id string) (*ClosureException, error) {
	var e ClosureException
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllExceptionsByOrg(ctx context.Context, orgID, employeeID string) ([]ClosureException, error) {
	var exceptions []ClosureException
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(orgID))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("created_at DESC").Find(&exceptions).Error
	return exceptions, err
}

// HasOpenException reports whether a pending or approved exception already
// exists. Rejected ones do not block a fresh attempt.
func (r *repository) HasOpenException(ctx context.Context, closureID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ClosureException{}).
		Where("closure_id = ? AND employee_id = ? AND status <> ?", closureID, employeeID, ExceptionStatusRejected).
		Count(&count).Error
	return count > 0, err
}

// MarkExceptionReviewed is a compare-and-swap on pending, mirroring the
// leave-request review path.
func (r *repository) MarkExceptionReviewed(ctx context.Context, orgID, id, status, reviewerID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ClosureException{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgID, ExceptionStatusPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
			"updated_at":  at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteExceptionsByClosure(ctx context.Context, closureID string) error {
	return r.db.WithContext(ctx).
		Where("closure_id = ?", closureID).
		Delete(&ClosureException{}).Error
}
