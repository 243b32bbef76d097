package sql

import (
	"context"
	"fmt"
	"strings"

	"useradmin/internal/entity"

	"gorm.io/gorm"
)

// CreateRole persists a new role.
func (r *GormRepository) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil {
		return fmt.Errorf("role is nil")
	}
	return r.db.WithContext(ctx).Create(role).Error
}

// UpdateRole applies the present fields and returns the updated row. An empty
// update fetches the current record unchanged.
func (r *GormRepository) UpdateRole(ctx context.Context, id uint, updates entity.RoleUpdates) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	if updates.IsEmpty() {
		return r.GetRoleByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetRoleByID(ctx, id)
}

// DeleteRole physically removes a role.
func (r *GormRepository) DeleteRole(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid role id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbRole{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetRoleByID loads a role by ID.
func (r *GormRepository) GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	var role entity.DbRole
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByName loads a role by case-insensitive name match.
func (r *GormRepository) GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("role name is empty")
	}
	var role entity.DbRole
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(trimmed)).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns all roles ordered by name.
func (r *GormRepository) ListRoles(ctx context.Context) ([]entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var roles []entity.DbRole
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CountUsersWithRole counts user rows referencing the role.
func (r *GormRepository) CountUsersWithRole(ctx context.Context, roleID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("role_id = ?", roleID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
