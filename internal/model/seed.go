package model

import (
	"context"
	"errors"
	"strings"

	"useradmin/internal/auth"
	"useradmin/internal/config"
	"useradmin/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var defaultRoleSeeds = []entity.DbRole{
	{Name: entity.RoleAdmin, Description: "Full administrative access"},
	{Name: entity.RoleUser, Description: "Default role for registered users"},
}

// SeedDefaults ensures the built-in roles exist and, while the users table is
// still empty, creates the bootstrap admin account from the environment.
func SeedDefaults(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	for _, seed := range defaultRoleSeeds {
		_, err := repo.GetRoleByName(ctx, seed.Name)
		switch {
		case err == nil:
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			role := seed
			if err := repo.CreateRole(ctx, &role); err != nil {
				return err
			}
			logrus.WithField("role", role.Name).Info("seeded default role")
		default:
			return err
		}
	}

	return seedAdminUser(ctx, repo, cfg)
}

func seedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminRole, err := repo.GetRoleByName(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        email,
		PasswordHash: hash,
		RoleID:       adminRole.ID,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return err
	}
	logrus.WithField("email", email).Info("seeded bootstrap admin account")
	return nil
}
