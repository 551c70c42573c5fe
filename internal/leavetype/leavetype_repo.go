package leavetype

import (
	"context"

	"powerleave/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	FindVisibleByOrg(ctx context.Context, orgID string) ([]LeaveType, error)
	FindVisibleByID(ctx context.Context, orgID, id string) (*LeaveType, error)
	Create(ctx context.Context, lt *LeaveType) error
	UpdateCustom(ctx context.Context, orgID, id string, fields map[string]any) (int64, error)
	DeleteCustom(ctx context.Context, orgID, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
	SeedDefaults(ctx context.Context, types []LeaveType) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindVisibleByOrg(ctx context.Context, orgID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.ScopeShared(orgID)).
		Order("created_at ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindVisibleByID(ctx context.Context, orgID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.ScopeShared(orgID)).
		First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

// UpdateCustom only touches org-owned custom types; global types stay
// immutable by never matching the filter.
func (r *repository) UpdateCustom(ctx context.Context, orgID, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Where("is_custom = ?", true).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteCustom(ctx context.Context, orgID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Where("is_custom = ?", true).
		Delete(&LeaveType{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LeaveType{}).Count(&count).Error
	return count, err
}

func (r *repository) SeedDefaults(ctx context.Context, types []LeaveType) error {
	return r.db.WithContext(ctx).Create(&types).Error
}
