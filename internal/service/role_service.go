package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"useradmin/internal/entity"
	"useradmin/internal/model"

	"gorm.io/gorm"
)

// RoleService orchestrates role CRUD with the name-uniqueness and in-use
// deletion guards.
type RoleService struct {
	repo model.Repository
}

// NewRoleService creates the role service.
func NewRoleService(repo model.Repository) *RoleService {
	return &RoleService{repo: repo}
}

// ListAll returns every role ordered by name. The result is never nil so the
// boundary renders an empty JSON array rather than null.
func (s *RoleService) ListAll(ctx context.Context) ([]entity.DbRole, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []entity.DbRole{}
	}
	return roles, nil
}

// GetByID returns a role or fails with ROLE_NOT_FOUND.
func (s *RoleService) GetByID(ctx context.Context, id uint) (*entity.DbRole, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeRoleNotFound, "role not found")
		}
		return nil, err
	}
	return role, nil
}

// Create adds a role after a case-insensitive name-uniqueness check.
func (s *RoleService) Create(ctx context.Context, req entity.RoleCreateRequest) (*entity.DbRole, error) {
	name := strings.TrimSpace(req.Name)

	_, err := s.repo.GetRoleByName(ctx, name)
	switch {
	case err == nil:
		return nil, NewError(CodeRoleNameTaken, fmt.Sprintf("a role named %q already exists", name))
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	role := &entity.DbRole{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewError(CodeRoleNameTaken, fmt.Sprintf("a role named %q already exists", name))
		}
		return nil, err
	}
	return role, nil
}

// Update modifies a role; a new name must not collide with a different role.
func (s *RoleService) Update(ctx context.Context, id uint, req entity.RoleUpdateRequest) (*entity.DbRole, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var updates entity.RoleUpdates
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		existing, err := s.repo.GetRoleByName(ctx, name)
		switch {
		case err == nil:
			if existing.ID != id {
				return nil, NewError(CodeRoleNameTaken, fmt.Sprintf("a role named %q already exists", name))
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		updates.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		updates.Description = &description
	}

	updated, err := s.repo.UpdateRole(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, NewError(CodeRoleNotFound, "role not found")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, NewError(CodeRoleNameTaken, "a role with that name already exists")
		}
		return nil, err
	}
	return updated, nil
}

// Remove deletes a role unless users still reference it; the in-use error
// reports how many do. Returns the deleted record.
func (s *RoleService) Remove(ctx context.Context, id uint) (*entity.DbRole, error) {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountUsersWithRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewError(CodeRoleInUse, fmt.Sprintf("cannot delete role: %d user(s) are assigned to it", count))
	}

	if err := s.repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeRoleNotFound, "role not found")
		}
		return nil, err
	}
	return role, nil
}
