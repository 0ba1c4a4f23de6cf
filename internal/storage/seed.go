package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/auth"
	"github.com/task-manager/internal/config"
	"github.com/task-manager/internal/model"
)

// SeedUsers creates the initial admin and regular accounts when the users
// table is empty. This is the only code path that assigns the Admin role;
// registration always produces plain users.
func SeedUsers(ctx context.Context, users *UserRepository, cfg config.SeedConfig, logger zerolog.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		email    string
		password string
		role     model.Role
	}{
		{cfg.AdminEmail, cfg.AdminPassword, model.RoleAdmin},
		{cfg.UserEmail, cfg.UserPassword, model.RoleUser},
	}

	for _, seed := range seeds {
		hash, err := auth.HashPassword(seed.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user, err := users.Create(ctx, seed.email, hash, seed.role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.email, err)
		}
		logger.Info().
			Str("email", user.Email).
			Str("role", string(user.Role)).
			Msg("seeded user")
	}

	return nil
}
