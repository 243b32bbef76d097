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

// UserService orchestrates profile reads and updates.
type UserService struct {
	repo model.Repository
}

// NewUserService creates the user service.
func NewUserService(repo model.Repository) *UserService {
	return &UserService{repo: repo}
}

// GetProfile returns the public view of a user.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*entity.UserPublic, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeUserNotFound, "user not found")
		}
		return nil, err
	}
	public := converter.MakeUserPublic(user)
	return &public, nil
}

// ListAll returns every user, password stripped, newest first.
func (s *UserService) ListAll(ctx context.Context) ([]entity.UserPublic, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return converter.MakeUserPublicList(users), nil
}

// UpdateProfile applies a self-service profile delta. A changed email is
// revalidated for uniqueness; keeping the current email is always allowed.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req entity.UpdateProfileRequest) (*entity.UserPublic, error) {
	updates, err := s.buildUserUpdates(ctx, userID, req.Name, req.Email, req.Password, nil)
	if err != nil {
		return nil, err
	}
	return s.applyUserUpdates(ctx, userID, updates)
}

// AdminUpdateUser is UpdateProfile plus role change by name.
func (s *UserService) AdminUpdateUser(ctx context.Context, targetUserID uint, req entity.AdminUpdateUserRequest) (*entity.UserPublic, error) {
	updates, err := s.buildUserUpdates(ctx, targetUserID, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	return s.applyUserUpdates(ctx, targetUserID, updates)
}

// UpdateAvatar records the stored avatar location on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) (*entity.UserPublic, error) {
	return s.applyUserUpdates(ctx, userID, entity.UserUpdates{AvatarURL: &avatarURL})
}

func (s *UserService) buildUserUpdates(ctx context.Context, userID uint, name, email, password, roleName *string) (entity.UserUpdates, error) {
	var updates entity.UserUpdates

	current, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return updates, NewError(CodeUserNotFound, "user not found")
		}
		return updates, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		updates.Name = &trimmed
	}

	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if trimmed != current.Email {
			_, err := s.repo.GetUserByEmail(ctx, trimmed)
			switch {
			case err == nil:
				return updates, NewError(CodeEmailTaken, "email is already in use by another user")
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return updates, err
			}
			updates.Email = &trimmed
		}
	}

	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return updates, err
		}
		updates.PasswordHash = &hash
	}

	if roleName != nil {
		role, err := s.repo.GetRoleByName(ctx, *roleName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return updates, NewError(CodeRoleNotFound, "role not found")
			}
			return updates, err
		}
		updates.RoleID = &role.ID
	}

	return updates, nil
}

func (s *UserService) applyUserUpdates(ctx context.Context, userID uint, updates entity.UserUpdates) (*entity.UserPublic, error) {
	updated, err := s.repo.UpdateUser(ctx, userID, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Existence was checked just before; losing the row here is a
			// defensive path rather than an expected outcome.
			return nil, NewError(CodeUpdateFailed, "failed to update user")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, NewError(CodeEmailTaken, "email is already in use by another user")
		}
		return nil, err
	}
	public := converter.MakeUserPublic(updated)
	return &public, nil
}
