package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"powerleave/internal/leaverequest"
	leaverequesterrors "powerleave/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRequestService struct {
	createFn  func(ctx context.Context, orgID, actorID string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
	getAllFn  func(ctx context.Context, orgID, actorID string, isAdmin bool, f leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequestResponse, int64, error)
	getByIDFn func(ctx context.Context, orgID, id string) (leaverequest.LeaveRequestResponse, error)
	reviewFn  func(ctx context.Context, orgID, reviewerID, id string, req leaverequest.ReviewLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error)
}

func (f *fakeRequestService) Create(ctx context.Context, orgID, actorID string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createFn(ctx, orgID, actorID, req)
}
func (f *fakeRequestService) GetAll(ctx context.Context, orgID, actorID string, isAdmin bool, filter leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequestResponse, int64, error) {
	return f.getAllFn(ctx, orgID, actorID, isAdmin, filter)
}
func (f *fakeRequestService) GetByID(ctx context.Context, orgID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, orgID, id)
}
func (f *fakeRequestService) Review(ctx context.Context, orgID, reviewerID, id string, req leaverequest.ReviewLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.reviewFn(ctx, orgID, reviewerID, id, req)
}

func TestLeaveRequestHandler_Create(t *testing.T) {
	t.Run("success uses user_id_validated fallback", func(t *testing.T) {
		orgID := uuid.New().String()
		actorID := uuid.New().String()

		svc := &fakeRequestService{
			createFn: func(ctx context.Context, oid, aid string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, orgID, oid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "vacation", req.LeaveTypeID)
				return leaverequest.LeaveRequestResponse{
					ID:          uuid.New().String(),
					EmployeeID:  aid,
					OrgID:       oid,
					LeaveTypeID: req.LeaveTypeID,
					StartDate:   req.StartDate,
					EndDate:     req.EndDate,
					DayCount:    2,
					HoursPerDay: 8,
					Status:      leaverequest.StatusPending,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"vacation","start_date":"2027-03-10","end_date":"2027-03-11","notes":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("org_id", orgID)
		c.Set("user_id_validated", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Nil(t, env.Error)
	})

	t.Run("negative missing required fields", func(t *testing.T) {
		svc := &fakeRequestService{
			createFn: func(ctx context.Context, oid, aid string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				t.Fatal("service must not be called on invalid payload")
				return leaverequest.LeaveRequestResponse{}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{"notes":"no dates"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("org_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Contains(t, env.Error.Message, "is required")
	})

	t.Run("negative overlap maps to 409", func(t *testing.T) {
		svc := &fakeRequestService{
			createFn: func(ctx context.Context, oid, aid string, req leaverequest.CreateLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrLeaveOverlap
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"vacation","start_date":"2027-03-12","end_date":"2027-03-15"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("org_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveRequestHandler_Review(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		orgID := uuid.New().String()
		reviewerID := uuid.New().String()
		requestID := uuid.New().String()

		svc := &fakeRequestService{
			reviewFn: func(ctx context.Context, oid, rid, id string, req leaverequest.ReviewLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, orgID, oid)
				assert.Equal(t, reviewerID, rid)
				assert.Equal(t, requestID, id)
				assert.Equal(t, leaverequest.StatusApproved, req.Status)
				return leaverequest.LeaveRequestResponse{
					ID:     id,
					Status: req.Status,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/"+requestID+"/review", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("org_id", orgID)
		c.Set("employee_id", reviewerID)

		h.Review(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative double review maps to 409", func(t *testing.T) {
		svc := &fakeRequestService{
			reviewFn: func(ctx context.Context, oid, rid, id string, req leaverequest.ReviewLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyReviewed
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/x/review", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("org_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Review(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("negative status outside enum", func(t *testing.T) {
		svc := &fakeRequestService{
			reviewFn: func(ctx context.Context, oid, rid, id string, req leaverequest.ReviewLeaveRequestRequest) (leaverequest.LeaveRequestResponse, error) {
				t.Fatal("service must not be called on invalid payload")
				return leaverequest.LeaveRequestResponse{}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/x/review", strings.NewReader(`{"status":"maybe"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("org_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Review(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Status is invalid", env.Error.Message)
	})
}
