package closure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	closureerrors "powerleave/internal/closure/errors"
	"powerleave/internal/employee"
	"powerleave/internal/events"
	"powerleave/internal/leaverequest"
	"powerleave/internal/leavetype"
	"powerleave/internal/messaging/kafka"
	"powerleave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=closure_service.go -destination=mock/closure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID, actorID string, req CreateClosureRequest) (ClosureResponse, error)
	GetAll(ctx context.Context, orgID string, f ListClosuresFilter) ([]ClosureResponse, error)
	Delete(ctx context.Context, orgID, id string) error

	RequestException(ctx context.Context, orgID, actorID, closureID string, req RequestExceptionRequest) (ExceptionResponse, error)
	GetAllExceptions(ctx context.Context, orgID, actorID string, isAdmin bool) ([]ExceptionResponse, error)
	ReviewException(ctx context.Context, orgID, reviewerID, id string, req ReviewExceptionRequest) (ExceptionResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	requests  leaverequest.Repository
	employees employee.Repository
	types     leavetype.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	requests leaverequest.Repository,
	employees employee.Repository,
	types leavetype.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, requests, employees, types, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	requests leaverequest.Repository,
	employees employee.Repository,
	types leavetype.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("closure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("closure.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		requests:  requests,
		employees: employees,
		types:     types,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Create registers a closure and, when auto_enroll is set, books one approved
// closure-tagged leave request per employee in the same transaction. The
// synthesized requests never touch the balance ledger.
func (s *service) Create(ctx context.Context, orgID, actorID string, req CreateClosureRequest) (ClosureResponse, error) {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return ClosureResponse{}, closureerrors.ErrInvalidOrgID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ClosureResponse{}, closureerrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ClosureResponse{}, err
	}
	endDate := startDate
	if req.EndDate != "" {
		endDate, err = parseDate(req.EndDate)
		if err != nil {
			return ClosureResponse{}, err
		}
	}
	kind := req.Kind
	if kind == "" {
		kind = KindShutdown
	}
	reason := req.Reason
	if reason == "" {
		reason = "Company closure"
	}
	allowExceptions := true
	if req.AllowExceptions != nil {
		allowExceptions = *req.AllowExceptions
	}

	c := &CompanyClosure{
		ID:              uuid.New(),
		OrgID:           &orgUUID,
		StartDate:       startDate,
		EndDate:         endDate,
		Reason:          reason,
		Kind:            kind,
		AutoEnroll:      req.AutoEnroll,
		AllowExceptions: allowExceptions,
		CreatedBy:       actorUUID,
	}

	enrolled := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qc := s.repo.WithTx(tx)
		if err := qc.Create(ctx, c); err != nil {
			return err
		}

		if req.AutoEnroll {
			n, err := s.enrollEveryone(ctx, tx, c, orgID, actorUUID)
			if err != nil {
				return err
			}
			enrolled = n
		}

		if s.outbox != nil {
			if err := s.stageCreatedEvent(ctx, tx, c, actorID, enrolled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create closure failed", zap.Error(err))
		return ClosureResponse{}, err
	}

	s.logger.Info("create closure success",
		zap.String("closure_id", c.ID.String()),
		zap.String("org_id", orgID),
		zap.String("kind", kind),
		zap.Bool("auto_enroll", req.AutoEnroll),
		zap.Int("enrolled", enrolled),
	)
	c.CreatedAt = time.Now().UTC()
	return mapClosureToResponse(*c), nil
}

func (s *service) enrollEveryone(ctx context.Context, tx *gorm.DB, c *CompanyClosure, orgID string, reviewer uuid.UUID) (int, error) {
	employees, err := s.employees.FindAllByOrg(ctx, orgID)
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, nil
	}

	typeName := "Vacation"
	if lt, err := s.types.FindVisibleByID(ctx, orgID, leavetype.BaselineTypeID); err == nil {
		typeName = lt.Name
	}

	now := time.Now().UTC()
	dayCount := int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
	closureID := c.ID

	batch := make([]leaverequest.LeaveRequest, 0, len(employees))
	for _, emp := range employees {
		batch = append(batch, leaverequest.LeaveRequest{
			ID:                 uuid.New(),
			EmployeeID:         emp.ID,
			EmployeeName:       emp.FullName,
			OrgID:              *c.OrgID,
			LeaveTypeID:        leavetype.BaselineTypeID,
			LeaveTypeName:      typeName,
			StartDate:          c.StartDate,
			EndDate:            c.EndDate,
			DayCount:           dayCount,
			HoursPerDay:        8,
			Notes:              c.Reason,
			Status:             leaverequest.StatusApproved,
			ReviewedBy:         &reviewer,
			ReviewedAt:         &now,
			ClosureID:          &closureID,
			IsClosureGenerated: true,
		})
	}

	if err := s.requests.WithTx(tx).CreateBatch(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (s *service) stageCreatedEvent(ctx context.Context, tx *gorm.DB, c *CompanyClosure, actorID string, enrolled int) error {
	event := events.ClosureCreatedEvent{
		EventType:    "closure_created",
		ClosureID:    c.ID.String(),
		OrgID:        c.OrgID.String(),
		Kind:         c.Kind,
		StartDate:    c.StartDate.Format(dateLayout),
		EndDate:      c.EndDate.Format(dateLayout),
		AutoEnrolled: enrolled,
		CreatedBy:    actorID,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "closure",
		AggregateID:   c.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ClosureCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, orgID string, f ListClosuresFilter) ([]ClosureResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return nil, closureerrors.ErrInvalidOrgID
	}
	closures, err := s.repo.FindAllVisible(ctx, orgID, f.Year)
	if err != nil {
		return nil, err
	}
	resp := make([]ClosureResponse, len(closures))
	for i, c := range closures {
		resp[i] = mapClosureToResponse(c)
	}
	return resp, nil
}

// Delete removes an org-owned closure together with every request it
// generated and every exception filed against it. Dependents go first so a
// failure midway never strands orphans after commit.
func (s *service) Delete(ctx context.Context, orgID, id string) error {
	if _, err := uuid.Parse(orgID); err != nil {
		return closureerrors.ErrInvalidOrgID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qc := s.repo.WithTx(tx)

		if _, err := qc.FindByIDAndOrg(ctx, orgID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return closureerrors.ErrClosureNotDeletable
			}
			return err
		}

		if err := s.requests.WithTx(tx).DeleteByClosure(ctx, id); err != nil {
			return err
		}
		if err := qc.DeleteExceptionsByClosure(ctx, id); err != nil {
			return err
		}

		affected, err := qc.Delete(ctx, orgID, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return closureerrors.ErrClosureNotDeletable
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delete closure success",
		zap.String("closure_id", id),
		zap.String("org_id", orgID),
	)
	return nil
}

func (s *service) RequestException(ctx context.Context, orgID, actorID, closureID string, req RequestExceptionRequest) (ExceptionResponse, error) {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return ExceptionResponse{}, closureerrors.ErrInvalidOrgID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExceptionResponse{}, closureerrors.ErrInvalidActorID
	}

	c, err := s.repo.FindVisibleByID(ctx, orgID, closureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExceptionResponse{}, closureerrors.ErrClosureNotFound
		}
		return ExceptionResponse{}, err
	}
	if !c.AllowExceptions {
		return ExceptionResponse{}, closureerrors.ErrExceptionsNotAllowed
	}

	exists, err := s.repo.HasOpenException(ctx, closureID, actorID)
	if err != nil {
		return ExceptionResponse{}, err
	}
	if exists {
		return ExceptionResponse{}, closureerrors.ErrExceptionAlreadyExists
	}

	emp, err := s.employees.FindByIDAndOrg(ctx, orgID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExceptionResponse{}, closureerrors.ErrEmployeeNotFound
		}
		return ExceptionResponse{}, err
	}

	e := &ClosureException{
		ID:           uuid.New(),
		ClosureID:    c.ID,
		EmployeeID:   actorUUID,
		EmployeeName: emp.FullName,
		OrgID:        orgUUID,
		Reason:       req.Reason,
		Status:       ExceptionStatusPending,
	}
	if err := s.repo.CreateException(ctx, e); err != nil {
		s.logger.Error("request exception persist failed", zap.Error(err))
		return ExceptionResponse{}, err
	}

	s.logger.Info("request exception success",
		zap.String("exception_id", e.ID.String()),
		zap.String("closure_id", closureID),
		zap.String("employee_id", actorID),
	)
	e.CreatedAt = time.Now().UTC()
	return mapExceptionToResponse(*e), nil
}

func (s *service) GetAllExceptions(ctx context.Context, orgID, actorID string, isAdmin bool) ([]ExceptionResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return nil, closureerrors.ErrInvalidOrgID
	}

	employeeID := ""
	if !isAdmin {
		employeeID = actorID
	}

	exceptions, err := s.repo.FindAllExceptionsByOrg(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]ExceptionResponse, len(exceptions))
	for i, e := range exceptions {
		resp[i] = mapExceptionToResponse(e)
	}
	return resp, nil
}

// ReviewException approves or rejects a pending exception. Approval releases
// the employee from the closure by deleting their auto-enrolled request;
// rejection leaves everything as is.
func (s *service) ReviewException(ctx context.Context, orgID, reviewerID, id string, req ReviewExceptionRequest) (ExceptionResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return ExceptionResponse{}, closureerrors.ErrInvalidOrgID
	}
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return ExceptionResponse{}, closureerrors.ErrInvalidActorID
	}

	var result ClosureException
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qc := s.repo.WithTx(tx)

		e, err := qc.FindExceptionByIDAndOrg(ctx, orgID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return closureerrors.ErrExceptionNotFound
			}
			return err
		}

		now := time.Now().UTC()
		affected, err := qc.MarkExceptionReviewed(ctx, orgID, id, req.Status, reviewerID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return closureerrors.ErrExceptionAlreadyReviewed
		}

		if req.Status == ExceptionStatusApproved {
			removed, err := s.requests.WithTx(tx).DeleteClosureGenerated(ctx, e.ClosureID.String(), e.EmployeeID.String())
			if err != nil {
				return err
			}
			// Zero removed means the closure was created without
			// auto-enroll; the approval still stands.
			s.logger.Debug("exception approval released requests",
				zap.String("exception_id", id),
				zap.Int64("removed", removed),
			)
		}

		result = *e
		result.Status = req.Status
		result.ReviewedBy = &reviewerUUID
		result.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return ExceptionResponse{}, err
	}

	s.logger.Info("review exception success",
		zap.String("exception_id", id),
		zap.String("status", result.Status),
	)
	return mapExceptionToResponse(result), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, closureerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapClosureToResponse(c CompanyClosure) ClosureResponse {
	resp := ClosureResponse{
		ID:              c.ID.String(),
		StartDate:       c.StartDate.Format(dateLayout),
		EndDate:         c.EndDate.Format(dateLayout),
		Reason:          c.Reason,
		Kind:            c.Kind,
		AutoEnroll:      c.AutoEnroll,
		AllowExceptions: c.AllowExceptions,
		CreatedBy:       c.CreatedBy.String(),
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.OrgID != nil {
		v := c.OrgID.String()
		resp.OrgID = &v
	}
	return resp
}

func mapExceptionToResponse(e ClosureException) ExceptionResponse {
	resp := ExceptionResponse{
		ID:           e.ID.String(),
		ClosureID:    e.ClosureID.String(),
		EmployeeID:   e.EmployeeID.String(),
		EmployeeName: e.EmployeeName,
		OrgID:        e.OrgID.String(),
		Reason:       e.Reason,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.ReviewedBy != nil {
		v := e.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if e.ReviewedAt != nil {
		v := e.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
