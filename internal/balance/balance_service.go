package balance

import (
	"context"
	"errors"
	"time"

	balanceerrors "powerleave/internal/balance/errors"
	"powerleave/internal/employee"
	"powerleave/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	EnsureBalances(ctx context.Context, orgID, employeeID string, year int) error
	GetAll(ctx context.Context, orgID, actorID string, isAdmin bool, employeeID *string) ([]BalanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	types     leavetype.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	types leavetype.Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, types: types, employees: employees, logger: l}
}

// EnsureBalances provisions one zero-used balance per leave type visible to
// the organization. Idempotent: re-running it creates nothing new and never
// touches used_days, so registration, invite, and first-login flows can all
// call it blindly.
func (s *service) EnsureBalances(ctx context.Context, orgID, employeeID string, year int) error {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return balanceerrors.ErrInvalidOrgID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return balanceerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	if _, err := s.employees.FindByIDAndOrg(ctx, orgID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrEmployeeNotInOrg
		}
		return err
	}

	types, err := s.types.FindVisibleByOrg(ctx, orgID)
	if err != nil {
		s.logger.Error("ensure balances type lookup failed", zap.Error(err))
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		for _, lt := range types {
			b := &LeaveBalance{
				ID:          uuid.New(),
				EmployeeID:  employeeUUID,
				OrgID:       orgUUID,
				LeaveTypeID: lt.ID,
				Year:        year,
				TotalDays:   lt.DaysPerYear,
			}
			if err := qtx.EnsureForType(ctx, b); err != nil {
				s.logger.Error("ensure balances persist failed",
					zap.String("employee_id", employeeID),
					zap.String("leave_type_id", lt.ID),
					zap.Error(err),
				)
				return err
			}
		}
		s.logger.Info("ensure balances success",
			zap.String("employee_id", employeeID),
			zap.String("org_id", orgID),
			zap.Int("year", year),
			zap.Int("types", len(types)),
		)
		return nil
	})
}

// GetAll returns current-year balances: the whole org for admins, the
// caller's own rows otherwise. remaining_days is computed, never stored, and
// deliberately not clamped at zero so over-allocation stays visible.
func (s *service) GetAll(ctx context.Context, orgID, actorID string, isAdmin bool, employeeID *string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return nil, balanceerrors.ErrInvalidOrgID
	}

	filter := employeeID
	if !isAdmin {
		filter = &actorID
	}

	year := time.Now().UTC().Year()
	rows, err := s.repo.ListForOrg(ctx, orgID, year, filter)
	if err != nil {
		s.logger.Error("list balances failed", zap.String("org_id", orgID), zap.Error(err))
		return nil, err
	}

	resp := make([]BalanceResponse, len(rows))
	for i, row := range rows {
		remaining := decimal.NewFromInt(int64(row.TotalDays)).Sub(row.UsedDays)
		resp[i] = BalanceResponse{
			EmployeeID:     row.EmployeeID.String(),
			EmployeeName:   row.EmployeeName,
			OrgID:          row.OrgID.String(),
			LeaveTypeID:    row.LeaveTypeID,
			LeaveTypeName:  row.LeaveTypeName,
			LeaveTypeColor: row.LeaveTypeColor,
			Year:           row.Year,
			TotalDays:      row.TotalDays,
			UsedDays:       row.UsedDays.String(),
			RemainingDays:  remaining.String(),
		}
	}
	return resp, nil
}
