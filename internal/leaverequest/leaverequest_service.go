package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"powerleave/internal/balance"
	"powerleave/internal/employee"
	"powerleave/internal/events"
	leaverequesterrors "powerleave/internal/leaverequest/errors"
	"powerleave/internal/leavetype"
	"powerleave/internal/messaging/kafka"
	"powerleave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, orgID, actorID string, isAdmin bool, f ListLeaveRequestsFilter) ([]LeaveRequestResponse, int64, error)
	GetByID(ctx context.Context, orgID, id string) (LeaveRequestResponse, error)
	Review(ctx context.Context, orgID, reviewerID, id string, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	types     leavetype.Repository
	employees employee.Repository
	balances  balance.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	types leavetype.Repository,
	employees employee.Repository,
	balances balance.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, types, employees, balances, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	types leavetype.Repository,
	employees employee.Repository,
	balances balance.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		employees: employees,
		balances:  balances,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, orgID, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("org_id", orgID),
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidOrgID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if endDate.Before(startDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	// Forward-only policy: submissions start today at the earliest and
	// reach at most two years out.
	today := todayUTC()
	if startDate.Before(today) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrStartDateInPast
	}
	maxFuture := today.AddDate(2, 0, 0)
	if startDate.After(maxFuture) || endDate.After(maxFuture) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrDateTooFarInFuture
	}

	lt, err := s.types.FindVisibleByID(ctx, orgID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotFound
		}
		s.logger.Error("create leave request type lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	emp, err := s.employees.FindByIDAndOrg(ctx, orgID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrEmployeeNotFound
		}
		s.logger.Error("create leave request employee lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	hours := req.HoursPerDay
	if hours == 0 {
		hours = 8
	}
	dayCount := int(endDate.Sub(startDate).Hours()/24) + 1

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    actorUUID,
		EmployeeName:  emp.FullName,
		OrgID:         orgUUID,
		LeaveTypeID:   lt.ID,
		LeaveTypeName: lt.Name,
		StartDate:     startDate,
		EndDate:       endDate,
		DayCount:      dayCount,
		HoursPerDay:   hours,
		Notes:         req.Notes,
		Status:        StatusPending,
	}

	inserted, err := s.repo.CreateIfNoOverlap(ctx, l)
	if err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !inserted {
		s.logger.Warn("create leave request overlap detected",
			zap.String("request_id", rid),
			zap.String("employee_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveOverlap
	}

	s.logger.Info("create leave request success",
		zap.String("leave_request_id", l.ID.String()),
		zap.String("org_id", orgID),
		zap.String("employee_id", actorID),
		zap.Int("day_count", dayCount),
	)
	l.CreatedAt = time.Now().UTC()
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, orgID, actorID string, isAdmin bool, f ListLeaveRequestsFilter) ([]LeaveRequestResponse, int64, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return nil, 0, leaverequesterrors.ErrInvalidOrgID
	}

	// Non-admins only ever see their own requests.
	if !isAdmin {
		f.EmployeeID = actorID
	}

	requests, total, err := s.repo.FindAllByOrg(ctx, orgID, f)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) GetByID(ctx context.Context, orgID, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByIDAndOrg(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Review moves a pending request to approved or rejected. The transition,
// the ledger debit, and the outbox event commit or roll back as one unit.
func (s *service) Review(ctx context.Context, orgID, reviewerID, id string, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("review leave request requested",
		zap.String("leave_request_id", id),
		zap.String("org_id", orgID),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", req.Status),
	)

	if _, err := uuid.Parse(orgID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidOrgID
	}
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	var result LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.FindByIDAndOrg(ctx, orgID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrLeaveRequestNotFound
			}
			return err
		}

		now := time.Now().UTC()
		affected, err := qtx.MarkReviewed(ctx, orgID, id, req.Status, reviewerID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Terminal states are terminal: a second review must fail,
			// never silently re-apply the debit.
			s.logger.Warn("review leave request already reviewed",
				zap.String("leave_request_id", id),
				zap.String("current_status", l.Status),
			)
			return leaverequesterrors.ErrAlreadyReviewed
		}

		var debited decimal.Decimal
		if req.Status == StatusApproved {
			// day_count x hours/8, booked against the calendar year current
			// at review time. A request spanning new year debits the
			// reviewer's year only.
			debited = decimal.NewFromInt(int64(l.DayCount)).
				Mul(decimal.NewFromInt(int64(l.HoursPerDay))).
				Div(decimal.NewFromInt(8))
			qbal := s.balances.WithTx(tx)
			if err := qbal.Debit(ctx, l.EmployeeID.String(), orgID, l.LeaveTypeID, now.Year(), debited); err != nil {
				return err
			}
		}

		if s.outbox != nil {
			if err := s.stageReviewedEvent(ctx, tx, l, req.Status, reviewerID, debited, now); err != nil {
				return err
			}
		}

		result = *l
		result.Status = req.Status
		result.ReviewedBy = &reviewerUUID
		result.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("review leave request success",
		zap.String("leave_request_id", id),
		zap.String("status", result.Status),
	)
	return mapToResponse(result), nil
}

func (s *service) stageReviewedEvent(
	ctx context.Context,
	tx *gorm.DB,
	l *LeaveRequest,
	status, reviewerID string,
	debited decimal.Decimal,
	at time.Time,
) error {
	event := events.LeaveRequestReviewedEvent{
		EventType:   "leave_request_reviewed",
		RequestID:   l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		OrgID:       l.OrgID.String(),
		LeaveTypeID: l.LeaveTypeID,
		Status:      status,
		ReviewedBy:  reviewerID,
		OccurredAt:  at,
	}
	if status == StatusApproved {
		event.DaysDebited = debited.String()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRequestReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                 l.ID.String(),
		EmployeeID:         l.EmployeeID.String(),
		EmployeeName:       l.EmployeeName,
		OrgID:              l.OrgID.String(),
		LeaveTypeID:        l.LeaveTypeID,
		LeaveTypeName:      l.LeaveTypeName,
		StartDate:          l.StartDate.Format(dateLayout),
		EndDate:            l.EndDate.Format(dateLayout),
		DayCount:           l.DayCount,
		HoursPerDay:        l.HoursPerDay,
		Notes:              l.Notes,
		Status:             l.Status,
		IsClosureGenerated: l.IsClosureGenerated,
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if l.ClosureID != nil {
		v := l.ClosureID.String()
		resp.ClosureID = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
