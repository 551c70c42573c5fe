package employee

import (
	"context"

	"powerleave/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAllByOrg(ctx context.Context, orgID string) ([]Employee, error)
	FindByIDAndOrg(ctx context.Context, orgID, id string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByOrg(ctx context.Context, orgID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndOrg(ctx context.Context, orgID, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}
