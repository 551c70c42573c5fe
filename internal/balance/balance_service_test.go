package balance_test

import (
	"context"
	"testing"

	"powerleave/internal/balance"
	balanceerrors "powerleave/internal/balance/errors"
	"powerleave/internal/employee"
	"powerleave/internal/leavetype"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	ensureForTypeFn func(ctx context.Context, b *balance.LeaveBalance) error
	debitFn         func(ctx context.Context, employeeID, orgID, leaveTypeID string, year int, amount decimal.Decimal) error
	listForOrgFn    func(ctx context.Context, orgID string, year int, employeeID *string) ([]balance.BalanceRow, error)
}

func (f *fakeBalanceRepository) WithTx(tx *gorm.DB) balance.Repository { return f }

func (f *fakeBalanceRepository) EnsureForType(ctx context.Context, b *balance.LeaveBalance) error {
	if f.ensureForTypeFn != nil {
		return f.ensureForTypeFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Debit(ctx context.Context, employeeID, orgID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, employeeID, orgID, leaveTypeID, year, amount)
	}
	return nil
}

func (f *fakeBalanceRepository) ListForOrg(ctx context.Context, orgID string, year int, employeeID *string) ([]balance.BalanceRow, error) {
	if f.listForOrgFn != nil {
		return f.listForOrgFn(ctx, orgID, year, employeeID)
	}
	return nil, nil
}

type fakeTypeRepository struct {
	findVisibleByOrgFn func(ctx context.Context, orgID string) ([]leavetype.LeaveType, error)
}

func (f *fakeTypeRepository) FindVisibleByOrg(ctx context.Context, orgID string) ([]leavetype.LeaveType, error) {
	if f.findVisibleByOrgFn != nil {
		return f.findVisibleByOrgFn(ctx, orgID)
	}
	return []leavetype.LeaveType{
		{ID: "vacation", Name: "Vacation", DaysPerYear: 26},
		{ID: "personal", Name: "Personal", DaysPerYear: 32},
		{ID: "medical", Name: "Medical", DaysPerYear: 180},
		{ID: "parental", Name: "Parental", DaysPerYear: 150},
	}, nil
}
func (f *fakeTypeRepository) FindVisibleByID(ctx context.Context, orgID, id string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error { return nil }
func (f *fakeTypeRepository) UpdateCustom(ctx context.Context, orgID, id string, fields map[string]any) (int64, error) {
	return 0, nil
}
func (f *fakeTypeRepository) DeleteCustom(ctx context.Context, orgID, id string) (int64, error) {
	return 0, nil
}
func (f *fakeTypeRepository) Count(ctx context.Context) (int64, error) { return 4, nil }
func (f *fakeTypeRepository) SeedDefaults(ctx context.Context, types []leavetype.LeaveType) error {
	return nil
}

type fakeEmployeeRepository struct {
	findByIDAndOrgFn func(ctx context.Context, orgID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindAllByOrg(ctx context.Context, orgID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndOrg(ctx context.Context, orgID, id string) (*employee.Employee, error) {
	if f.findByIDAndOrgFn != nil {
		return f.findByIDAndOrgFn(ctx, orgID, id)
	}
	return &employee.Employee{ID: uuid.MustParse(id), FullName: "Sari Utami"}, nil
}

type balanceServiceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   balance.Service
	repo      *fakeBalanceRepository
	types     *fakeTypeRepository
	employees *fakeEmployeeRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	types := &fakeTypeRepository{}
	employees := &fakeEmployeeRepository{}
	svc := balance.NewService(gdb, repo, types, employees)

	return &balanceServiceDeps{
		sqlMock:   mock,
		service:   svc,
		repo:      repo,
		types:     types,
		employees: employees,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestBalanceService_EnsureBalances(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("provisions one row per visible type", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		seen := map[string]int{}
		deps.repo.ensureForTypeFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			assert.Equal(t, uuid.MustParse(employeeID), b.EmployeeID)
			assert.Equal(t, 2027, b.Year)
			assert.True(t, b.UsedDays.IsZero())
			seen[b.LeaveTypeID] = b.TotalDays
			return nil
		}

		err := deps.service.EnsureBalances(ctx, orgID, employeeID, 2027)

		assert.NoError(t, err)
		assert.Equal(t, map[string]int{
			"vacation": 26,
			"personal": 32,
			"medical":  180,
			"parental": 150,
		}, seen)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second run touches nothing it should not", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		expectTx(t, deps.sqlMock, true)

		calls := 0
		deps.repo.ensureForTypeFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			calls++
			return nil
		}

		assert.NoError(t, deps.service.EnsureBalances(ctx, orgID, employeeID, 2027))
		assert.NoError(t, deps.service.EnsureBalances(ctx, orgID, employeeID, 2027))

		// The repo upsert is conflict-ignoring, so re-running provisions the
		// same keys and changes nothing.
		assert.Equal(t, 8, calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside org", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.employees.findByIDAndOrgFn = func(ctx context.Context, oid, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.EnsureBalances(ctx, orgID, employeeID, 0)

		assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotInOrg)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		err := deps.service.EnsureBalances(ctx, orgID, "not-a-uuid", 0)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})
}

func TestBalanceService_GetAll(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("non-admin sees only own rows", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.repo.listForOrgFn = func(ctx context.Context, oid string, year int, employeeID *string) ([]balance.BalanceRow, error) {
			assert.NotNil(t, employeeID)
			assert.Equal(t, actorID, *employeeID)
			return nil, nil
		}

		other := uuid.New().String()
		_, err := deps.service.GetAll(ctx, orgID, actorID, false, &other)

		assert.NoError(t, err)
	})

	t.Run("remaining days keeps negative visible", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.repo.listForOrgFn = func(ctx context.Context, oid string, year int, employeeID *string) ([]balance.BalanceRow, error) {
			return []balance.BalanceRow{
				{
					LeaveBalance: balance.LeaveBalance{
						ID:          uuid.New(),
						EmployeeID:  uuid.MustParse(actorID),
						OrgID:       uuid.MustParse(orgID),
						LeaveTypeID: "vacation",
						Year:        year,
						TotalDays:   26,
						UsedDays:    decimal.RequireFromString("27.5"),
					},
					EmployeeName:   "Sari Utami",
					LeaveTypeName:  "Vacation",
					LeaveTypeColor: "#22C55E",
				},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, orgID, actorID, true, nil)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "27.5", resp[0].UsedDays)
		assert.Equal(t, "-1.5", resp[0].RemainingDays)
	})
}
