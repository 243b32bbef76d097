package api

import (
	"context"
	"net/http"
	"time"

	"useradmin/internal/entity"

	"github.com/gin-gonic/gin"
)

// Register creates a new account with the default "user" role.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.Register(ctx, req); err != nil {
		RespondServiceError(c, err, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
}

// Login verifies credentials and issues a bearer token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		RespondServiceError(c, err, "failed to log in user")
		return
	}

	c.JSON(http.StatusOK, resp)
}
