package converter

import "useradmin/internal/entity"

// MakeUserPublic strips sensitive fields and denormalises the role name.
func MakeUserPublic(user *entity.DbUser) entity.UserPublic {
	if user == nil {
		return entity.UserPublic{}
	}
	return entity.UserPublic{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		RoleID:    user.RoleID,
		Role:      user.Role.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MakeUserPublicList converts a slice of user rows.
func MakeUserPublicList(users []entity.DbUser) []entity.UserPublic {
	result := make([]entity.UserPublic, 0, len(users))
	for idx := range users {
		result = append(result, MakeUserPublic(&users[idx]))
	}
	return result
}
