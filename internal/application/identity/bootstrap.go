package identity

import (
	"context"
	"errors"

	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EnsureSuperAdmin creates the platform super-admin on first start. An
// existing account with the same email is left untouched.
func EnsureSuperAdmin(ctx context.Context, users identity.UserRepository, email, password, name string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewSuperAdmin(email, password, name)
	if err != nil {
		return err
	}
	if err := users.Save(ctx, user); err != nil {
		return err
	}
	logger.Info("Super-admin created", zap.String("email", user.Email))
	return nil
}
