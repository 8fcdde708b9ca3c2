package analytics

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
	l := zap.L().Named("analytics.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("analytics request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) LeaveSummary(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.LeaveSummary(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Headcount(c *gin.Context) {
	resp, err := h.service.Headcount(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
