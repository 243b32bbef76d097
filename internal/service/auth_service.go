package service

import (
	"context"
	"errors"
	"strings"

	"useradmin/internal/auth"
	"useradmin/internal/entity"
	"useradmin/internal/entity/converter"
	"useradmin/internal/model"

	"gorm.io/gorm"
)

// AuthService orchestrates registration and login.
type AuthService struct {
	repo   model.Repository
	tokens *auth.Manager
}

// NewAuthService creates the auth service.
func NewAuthService(repo model.Repository, tokens *auth.Manager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new account with the default "user" role. No token is
// issued on registration.
func (s *AuthService) Register(ctx context.Context, req entity.AuthRegisterRequest) error {
	email := strings.TrimSpace(req.Email)

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return NewError(CodeEmailTaken, "email is already registered")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	role, err := s.repo.GetRoleByName(ctx, entity.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeRoleNotFound, "default role does not exist")
		}
		return err
	}

	user := &entity.DbUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The pre-check can lose a race; the unique index is authoritative.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return NewError(CodeEmailTaken, "email is already registered")
		}
		return err
	}
	return nil
}

// Login verifies credentials and issues a token carrying {userId, email, role}.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req entity.AuthLoginRequest) (*entity.AuthLoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, NewError(CodeInvalidCredentials, "invalid email or password")
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role.Name)
	if err != nil {
		return nil, err
	}

	return &entity.AuthLoginResponse{
		Token: token,
		User:  converter.MakeUserPublic(user),
	}, nil
}
