package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"powerleave/internal/leaverequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// The conditional insert compares closed intervals: an existing row blocks a
// new one when existing.start_date <= new.end_date AND existing.end_date >=
// new.start_date. The regexp pins the operators and which date lands on which
// side, the args pin the bind order.
const createIfNoOverlapSQL = `(?s)INSERT INTO leave_requests.*WHERE NOT EXISTS.*employee_id = \$13.*start_date <= \$14 AND end_date >= \$15`

func TestLeaveRequestRepository_CreateIfNoOverlap(t *testing.T) {
	newRequest := func() *leaverequest.LeaveRequest {
		return &leaverequest.LeaveRequest{
			ID:            uuid.New(),
			EmployeeID:    uuid.New(),
			EmployeeName:  "Budi Hartono",
			OrgID:         uuid.New(),
			LeaveTypeID:   "vacation",
			LeaveTypeName: "Vacation",
			StartDate:     day(2027, time.March, 13),
			EndDate:       day(2027, time.March, 15),
			DayCount:      3,
			HoursPerDay:   8,
			Notes:         "Family matters",
			Status:        leaverequest.StatusPending,
		}
	}

	expectInsert := func(mock sqlmock.Sqlmock, l *leaverequest.LeaveRequest) *sqlmock.ExpectedExec {
		return mock.ExpectExec(createIfNoOverlapSQL).
			WithArgs(
				l.ID, l.EmployeeID, l.EmployeeName, l.OrgID, l.LeaveTypeID, l.LeaveTypeName,
				l.StartDate, l.EndDate, l.DayCount, l.HoursPerDay, l.Notes, l.Status,
				// guard binds: employee, then end against start_date, start
				// against end_date
				l.EmployeeID, l.EndDate, l.StartDate,
			)
	}

	t.Run("inserts when the interval is free", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := leaverequest.NewRepository(gdb)

		l := newRequest()
		expectInsert(mock, l).WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.CreateIfNoOverlap(context.Background(), l)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("suppressed insert reports overlap", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := leaverequest.NewRepository(gdb)

		// A booking ending 03-12 blocks a new one starting 03-12: shared
		// boundary days overlap.
		l := newRequest()
		l.StartDate = day(2027, time.March, 12)
		expectInsert(mock, l).WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.CreateIfNoOverlap(context.Background(), l)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to overlap", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := leaverequest.NewRepository(gdb)

		l := newRequest()
		expectInsert(mock, l).WillReturnError(&pgconn.PgError{Code: "23505"})

		ok, err := repo.CreateIfNoOverlap(context.Background(), l)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
