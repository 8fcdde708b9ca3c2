package leavebalance

import (
	"net/http"
	"strconv"

	"go-hrportal/internal/shared/apperror"
	"go-hrportal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMine returns the authenticated employee's balances for a year
// (default: current year).
func (h *Handler) GetMine(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	resp, err := h.service.GetBalances(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetByEmployee lets privileged actors inspect another employee's balances.
func (h *Handler) GetByEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	resp, err := h.service.GetBalances(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Provision(c *gin.Context) {
	var req ProvisionBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Provision(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}
