package model

import (
	"context"

	"useradmin/internal/entity"
)

// Repository defines the persistence operations for users and roles. Absent
// rows surface as gorm.ErrRecordNotFound; unique-constraint violations as
// gorm.ErrDuplicatedKey.
type Repository interface {
	// Users. Read operations resolve the joined role name.
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// Roles.
	CreateRole(ctx context.Context, role *entity.DbRole) error
	UpdateRole(ctx context.Context, id uint, updates entity.RoleUpdates) (*entity.DbRole, error)
	DeleteRole(ctx context.Context, id uint) error
	GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error)
	GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error)
	ListRoles(ctx context.Context) ([]entity.DbRole, error)
	CountUsersWithRole(ctx context.Context, roleID uint) (int64, error)
}
