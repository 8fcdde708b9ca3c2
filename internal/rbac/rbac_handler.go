package rbac

import (
	"errors"
	"net/http"
	"strings"

	"go-hrportal/internal/shared/apperror"
	"go-hrportal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	service Service
	repo    Repository
	logger  *zap.Logger
}

func NewHandler(service Service, repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, repo: repo, logger: l}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.EmployeeID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"employee_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "enforce failed", nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.repo.ListRoles()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to list roles", nil)
		return
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := h.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to list role permissions", nil)
			return
		}
		resp = append(resp, mapRoleToResponse(role, perms))
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRole(c *gin.Context) {
	role, err := h.repo.GetRoleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "role not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to get role", nil)
		return
	}

	perms, err := h.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to list role permissions", nil)
		return
	}

	response.Success(c, http.StatusOK, mapRoleToResponse(*role, perms), nil)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if existing, err := h.repo.GetRoleByName(req.Name); err == nil && existing != nil {
		response.Error(c, http.StatusConflict, apperror.CodeConflict, "role with the same name already exists", nil)
		return
	}

	role := &RoleRow{
		Name:        strings.ToLower(strings.TrimSpace(req.Name)),
		Description: req.Description,
	}
	if err := h.repo.CreateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to create role", nil)
		return
	}

	if len(req.Permissions) > 0 {
		if err := h.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to assign permissions", nil)
			return
		}
	}

	perms, _ := h.repo.GetPermissionsByRoleID(role.ID)
	response.Success(c, http.StatusCreated, mapRoleToResponse(*role, perms), nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	role, err := h.repo.GetRoleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "role not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to get role", nil)
		return
	}

	if req.Name != "" {
		role.Name = strings.ToLower(strings.TrimSpace(req.Name))
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := h.repo.UpdateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to update role", nil)
		return
	}

	if req.Permissions != nil {
		if err := h.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to update permissions", nil)
			return
		}
	}

	perms, _ := h.repo.GetPermissionsByRoleID(role.ID)
	response.Success(c, http.StatusOK, mapRoleToResponse(*role, perms), nil)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.repo.DeleteRole(c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to delete role", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to list permissions", nil)
		return
	}

	resp := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func mapRoleToResponse(role RoleRow, perms []PermissionRow) RoleResponse {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Resource + ":" + p.Action
	}
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: names,
	}
}
