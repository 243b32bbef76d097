package api

import (
	"context"
	"net/http"
	"time"

	"useradmin/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListRoles returns every role ordered by name.
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	roles, err := h.roleService.ListAll(ctx)
	if err != nil {
		RespondServiceError(c, err, "failed to list roles")
		return
	}

	c.JSON(http.StatusOK, roles)
}

// GetRole returns a single role by id.
func (h *HTTPHandler) GetRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.roleService.GetByID(ctx, roleID)
	if err != nil {
		RespondServiceError(c, err, "failed to load role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// CreateRole adds a new role.
func (h *HTTPHandler) CreateRole(c *gin.Context) {
	var req entity.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.roleService.Create(ctx, req)
	if err != nil {
		RespondServiceError(c, err, "failed to create role")
		return
	}

	c.JSON(http.StatusCreated, role)
}

// UpdateRole applies a partial update to a role.
func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.roleService.Update(ctx, roleID, req)
	if err != nil {
		RespondServiceError(c, err, "failed to update role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRole removes an unused role and returns the deleted record.
func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.roleService.Remove(ctx, roleID)
	if err != nil {
		RespondServiceError(c, err, "failed to delete role")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "role deleted successfully",
		"role":    role,
	})
}
