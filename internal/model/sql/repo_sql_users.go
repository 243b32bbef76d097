package sql

import (
	"context"
	"fmt"
	"strings"

	"useradmin/internal/entity"

	"gorm.io/gorm"
)

// CreateUser persists a new user and reloads it with the joined role. The
// caller resolves the role name to RoleID beforehand.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	if err := r.db.WithContext(ctx).Omit("Role").Create(user).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Joins("Role").First(user, user.ID).Error
}

// UpdateUser applies the present fields and returns the updated row with its
// role joined. An empty update fetches the current record unchanged.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if updates.IsEmpty() {
		return r.GetUserByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetUserByID(ctx, id)
}

// GetUserByEmail loads a user by exact email match.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Joins("Role").Where("users.email = ?", trimmed).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Joins("Role").First(&user, "users.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users with their role, newest first.
func (r *GormRepository) ListUsers(ctx context.Context) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Joins("Role").Order("users.created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
