package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"useradmin/internal/entity"

	"gorm.io/gorm"
)

// stubRepo is an in-memory model.Repository for service tests. It mimics the
// storage contract: ErrRecordNotFound for absent rows, ErrDuplicatedKey for
// unique-constraint violations, and role names joined onto user reads.
type stubRepo struct {
	users      map[uint]*entity.DbUser
	roles      map[uint]*entity.DbRole
	nextUserID uint
	nextRoleID uint
	now        time.Time
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users: make(map[uint]*entity.DbUser),
		roles: make(map[uint]*entity.DbRole),
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *stubRepo) cloneUser(u *entity.DbUser) *entity.DbUser {
	clone := *u
	if role, ok := r.roles[u.RoleID]; ok {
		clone.Role = *role
	}
	return &clone
}

func (r *stubRepo) mustAddRole(name, description string) *entity.DbRole {
	role := &entity.DbRole{Name: name, Description: description}
	if err := r.CreateRole(context.Background(), role); err != nil {
		panic(err)
	}
	return role
}

func (r *stubRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if _, ok := r.roles[user.RoleID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = r.tick()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	if role, ok := r.roles[user.RoleID]; ok {
		user.Role = *role
	}
	return nil
}

func (r *stubRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) (*entity.DbUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if updates.IsEmpty() {
		return r.cloneUser(user), nil
	}
	if updates.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *updates.Email {
				return nil, gorm.ErrDuplicatedKey
			}
		}
		user.Email = *updates.Email
	}
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	if updates.RoleID != nil {
		user.RoleID = *updates.RoleID
	}
	if updates.AvatarURL != nil {
		user.AvatarURL = *updates.AvatarURL
	}
	user.UpdatedAt = r.tick()
	return r.cloneUser(user), nil
}

func (r *stubRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, user := range r.users {
		if user.Email == email {
			return r.cloneUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cloneUser(user), nil
}

func (r *stubRepo) ListUsers(_ context.Context) ([]entity.DbUser, error) {
	users := make([]entity.DbUser, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *r.cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *stubRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubRepo) CreateRole(_ context.Context, role *entity.DbRole) error {
	for _, existing := range r.roles {
		if strings.EqualFold(existing.Name, role.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextRoleID++
	role.ID = r.nextRoleID
	role.CreatedAt = r.tick()
	role.UpdatedAt = role.CreatedAt
	stored := *role
	r.roles[role.ID] = &stored
	return nil
}

func (r *stubRepo) UpdateRole(_ context.Context, id uint, updates entity.RoleUpdates) (*entity.DbRole, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if updates.IsEmpty() {
		clone := *role
		return &clone, nil
	}
	if updates.Name != nil {
		for otherID, other := range r.roles {
			if otherID != id && other.Name == *updates.Name {
				return nil, gorm.ErrDuplicatedKey
			}
		}
		role.Name = *updates.Name
	}
	if updates.Description != nil {
		role.Description = *updates.Description
	}
	role.UpdatedAt = r.tick()
	clone := *role
	return &clone, nil
}

func (r *stubRepo) DeleteRole(_ context.Context, id uint) error {
	if _, ok := r.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *stubRepo) GetRoleByID(_ context.Context, id uint) (*entity.DbRole, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRepo) GetRoleByName(_ context.Context, name string) (*entity.DbRole, error) {
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			clone := *role
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) ListRoles(_ context.Context) ([]entity.DbRole, error) {
	roles := make([]entity.DbRole, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles, nil
}

func (r *stubRepo) CountUsersWithRole(_ context.Context, roleID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

// racingRepo simulates a concurrent writer committing between a service
// pre-check and its write: reads for the contested value miss, then the
// unique constraint fires on the write itself.
type racingRepo struct {
	*stubRepo
	raceEmail    string
	raceRoleName string
}

func (r *racingRepo) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r.raceEmail != "" && email == r.raceEmail {
		return nil, gorm.ErrRecordNotFound
	}
	return r.stubRepo.GetUserByEmail(ctx, email)
}

func (r *racingRepo) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r.raceEmail != "" && user.Email == r.raceEmail {
		return gorm.ErrDuplicatedKey
	}
	return r.stubRepo.CreateUser(ctx, user)
}

func (r *racingRepo) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) (*entity.DbUser, error) {
	if r.raceEmail != "" && updates.Email != nil && *updates.Email == r.raceEmail {
		return nil, gorm.ErrDuplicatedKey
	}
	return r.stubRepo.UpdateUser(ctx, id, updates)
}

func (r *racingRepo) GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error) {
	if r.raceRoleName != "" && strings.EqualFold(name, r.raceRoleName) {
		return nil, gorm.ErrRecordNotFound
	}
	return r.stubRepo.GetRoleByName(ctx, name)
}

func (r *racingRepo) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r.raceRoleName != "" && strings.EqualFold(role.Name, r.raceRoleName) {
		return gorm.ErrDuplicatedKey
	}
	return r.stubRepo.CreateRole(ctx, role)
}

func (r *racingRepo) UpdateRole(ctx context.Context, id uint, updates entity.RoleUpdates) (*entity.DbRole, error) {
	if r.raceRoleName != "" && updates.Name != nil && strings.EqualFold(*updates.Name, r.raceRoleName) {
		return nil, gorm.ErrDuplicatedKey
	}
	return r.stubRepo.UpdateRole(ctx, id, updates)
}
