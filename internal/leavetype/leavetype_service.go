package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "powerleave/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const catalogKeyPrefix = "leave_types:catalog:"

func catalogKey(orgID string) string {
	return catalogKeyPrefix + orgID
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, orgID string) ([]LeaveTypeResponse, error)
	Create(ctx context.Context, orgID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, orgID, id string) error
	EnsureDefaults(ctx context.Context) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetAll reads through a Redis cache; concurrent misses for the same org
// collapse into one catalog query via singleflight.
func (s *service) GetAll(ctx context.Context, orgID string) ([]LeaveTypeResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return nil, leavetypeerrors.ErrInvalidOrgID
	}

	cacheKey := catalogKey(orgID)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []LeaveTypeResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		types, err := s.repo.FindVisibleByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(types)

		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute).Err()
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get leave types failed", zap.String("org_id", orgID), zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) Create(ctx context.Context, orgID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidOrgID
	}

	lt := &LeaveType{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Color:       req.Color,
		DaysPerYear: req.DaysPerYear,
		OrgID:       &orgUUID,
		IsCustom:    true,
	}
	if lt.Color == "" {
		lt.Color = "#22C55E"
	}
	if req.DaysPerYear == 0 {
		lt.DaysPerYear = 26
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.invalidateCatalog(ctx, orgID)

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID),
		zap.String("org_id", orgID),
	)
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, orgID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(orgID); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidOrgID
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.DaysPerYear != nil {
		fields["days_per_year"] = *req.DaysPerYear
	}
	if len(fields) == 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrNothingToUpdate
	}

	affected, err := s.repo.UpdateCustom(ctx, orgID, id, fields)
	if err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if affected == 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotEditable
	}
	s.invalidateCatalog(ctx, orgID)

	lt, err := s.repo.FindVisibleByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, orgID, id string) error {
	if _, err := uuid.Parse(orgID); err != nil {
		return leavetypeerrors.ErrInvalidOrgID
	}

	affected, err := s.repo.DeleteCustom(ctx, orgID, id)
	if err != nil {
		s.logger.Error("delete leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return leavetypeerrors.ErrLeaveTypeNotEditable
	}
	s.invalidateCatalog(ctx, orgID)

	s.logger.Info("delete leave type success",
		zap.String("leave_type_id", id),
		zap.String("org_id", orgID),
	)
	return nil
}

// EnsureDefaults bootstraps the global catalog on first start. Without it
// balances cannot be provisioned and auto-enroll has no baseline type.
func (s *service) EnsureDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := s.repo.SeedDefaults(ctx, DefaultTypes()); err != nil {
		return err
	}
	s.logger.Info("default leave type catalog created")
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context, orgID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogKey(orgID)).Err(); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.String("org_id", orgID), zap.Error(err))
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		Color:       lt.Color,
		DaysPerYear: lt.DaysPerYear,
		IsCustom:    lt.IsCustom,
	}
	if lt.OrgID != nil {
		v := lt.OrgID.String()
		resp.OrgID = &v
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
