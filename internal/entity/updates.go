package entity

// UserUpdates folds the optional user fields into a partial update. The role
// is already resolved to its id by the caller.
type UserUpdates struct {
	Name         *string
	Email        *string
	PasswordHash *string
	RoleID       *uint
	AvatarURL    *string
}

// ToMap converts to a GORM updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.RoleID != nil {
		updates["role_id"] = *u.RoleID
	}
	if u.AvatarURL != nil {
		updates["avatar_url"] = *u.AvatarURL
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// RoleUpdates folds the optional role fields into a partial update.
type RoleUpdates struct {
	Name        *string
	Description *string
}

// ToMap converts to a GORM updates map.
func (u RoleUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u RoleUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
