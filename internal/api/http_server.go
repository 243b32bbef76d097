package api

import (
	"strings"
	"time"

	"useradmin/internal/auth"
	"useradmin/internal/config"
	"useradmin/internal/model"
	"useradmin/internal/service"
	"useradmin/internal/storage"
)

// HTTPHandler bundles the services behind the REST surface.
type HTTPHandler struct {
	cfg               config.Config
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	authService *service.AuthService
	userService *service.UserService
	roleService *service.RoleService
}

// NewHTTPHandler wires the services from configuration.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:               cfg,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		authService:       service.NewAuthService(repo, authManager),
		userService:       service.NewUserService(repo),
		roleService:       service.NewRoleService(repo),
	}, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
