package balance

import (
	"net/http"

	"powerleave/internal/shared/apperror"
	"powerleave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := c.GetString("org_id")
	actorID := getActorID(c)
	isAdmin := c.GetString("role") == "admin"

	var employeeID *string
	if v := c.Query("employee_id"); v != "" {
		employeeID = &v
	}

	resp, err := h.service.GetAll(ctx, orgID, actorID, isAdmin, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Provision is the hook the identity collaborators call when an employee is
// registered, invited, or logs in for the first time.
func (h *Handler) Provision(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := c.GetString("org_id")

	var req ProvisionBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http provision balances validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	if err := h.service.EnsureBalances(ctx, orgID, req.EmployeeID, req.Year); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"provisioned": true}, nil)
}
