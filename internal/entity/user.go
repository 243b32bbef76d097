package entity

import "time"

// DbUser represents a persisted user account. The role name is resolved
// through the Role association; the hash never leaves the server.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	RoleID       uint      `gorm:"column:role_id;index;not null" json:"role_id"`
	Role         DbRole    `gorm:"foreignKey:RoleID" json:"-"`
	AvatarURL    string    `gorm:"column:avatar_url;type:varchar(512)" json:"avatar_url,omitempty"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserPublic is the client-facing user representation, password stripped.
type UserPublic struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    uint      `json:"role_id"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthLoginResponse struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}

// UpdateProfileRequest carries the self-service profile delta. Absent fields
// stay untouched; an all-empty body is a defined no-op.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// AdminUpdateUserRequest additionally allows changing the role by name.
type AdminUpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" binding:"omitempty,min=2,max=50"`
}

type UserListResponse struct {
	Users []UserPublic `json:"users"`
}
