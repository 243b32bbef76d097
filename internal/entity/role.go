package entity

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DbRole represents a role row. Name uniqueness is checked case-insensitively
// at the service layer; the unique index only backstops exact-case duplicates
// from concurrent writers.
type DbRole struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "roles"
}

type RoleCreateRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

type RoleUpdateRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}
