package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"useradmin/internal/entity"
	"useradmin/internal/storage"

	"github.com/gin-gonic/gin"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// Me returns the authenticated user's profile.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		RespondServiceError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (h *HTTPHandler) UpdateMe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req entity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.userService.UpdateProfile(ctx, user.ID, req)
	if err != nil {
		RespondServiceError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated successfully",
		"user":    updated,
	})
}

// ListUsers returns every user, newest first.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.userService.ListAll(ctx)
	if err != nil {
		RespondServiceError(c, err, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, entity.UserListResponse{Users: users})
}

// GetUser returns a single user by id.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		RespondServiceError(c, err, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AdminUpdateUser applies a partial update, optionally changing the role.
func (h *HTTPHandler) AdminUpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.userService.AdminUpdateUser(ctx, userID, req)
	if err != nil {
		RespondServiceError(c, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user updated successfully",
		"user":    updated,
	})
}

// UploadAvatar stores an image upload and records its public URL on the
// authenticated user. Repeated uploads for the same user overwrite the object.
func (h *HTTPHandler) UploadAvatar(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		BadRequest(c, ErrCodeInvalidRequest, "avatar file exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondServiceError(c, err, "failed to open avatar upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		RespondServiceError(c, err, "failed to read avatar upload")
		return
	}
	if len(data) > maxAvatarBytes {
		BadRequest(c, ErrCodeInvalidRequest, "avatar file exceeds the 5MB limit")
		return
	}

	ext, ok := avatarExtensions[http.DetectContentType(data)]
	if !ok {
		BadRequest(c, ErrCodeInvalidRequest, "avatar must be a PNG, JPEG or WebP image")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	objectPath, err := h.storage.Save(ctx, data, storage.SaveOptions{
		BaseName:  fmt.Sprintf("user-%d", user.ID),
		Extension: ext,
	})
	if err != nil {
		RespondServiceError(c, err, "failed to store avatar")
		return
	}

	updated, err := h.userService.UpdateAvatar(ctx, user.ID, h.publicURL(objectPath))
	if err != nil {
		RespondServiceError(c, err, "failed to record avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "avatar updated successfully",
		"user":    updated,
	})
}

func (h *HTTPHandler) publicURL(objectPath string) string {
	return h.storagePublicBase + "/" + strings.TrimLeft(objectPath, "/")
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
