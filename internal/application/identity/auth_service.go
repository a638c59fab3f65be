package identity

import (
	"context"
	"errors"

	"github.com/clubfinanzas/backend/internal/application/audit"
	"github.com/clubfinanzas/backend/internal/domain/club"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is the only error a failed login ever returns, so
// callers cannot tell unknown emails from wrong passwords or inactive accounts.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Credenciales inválidas")

// AuthService handles login, logout and the current session
type AuthService struct {
	userRepo   identity.UserRepository
	clubRepo   club.ClubRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	clubRepo club.ClubRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		clubRepo:   clubRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		audit:      recorder,
		logger:     logger,
	}
}

// Login verifies the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("Login attempt for inactive user", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.SuperAdmin {
		if err := s.checkClubActive(ctx, user); err != nil {
			return nil, err
		}
	}

	issued, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role.String(),
		ClubID:     user.ClubID,
		SuperAdmin: user.SuperAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "No se pudo generar el token de autenticación")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the session is valid even if the timestamp could not be stored
		s.logger.Error("Failed to record last login", zap.Error(err))
	}

	if user.ClubID != nil {
		userID := user.ID
		actorCtx := audit.WithActor(ctx, withUser(audit.ActorFromContext(ctx), &userID, user.Name))
		s.audit.Record(actorCtx, audit.Entry{
			ClubID:     *user.ClubID,
			Action:     domainaudit.ActionLogin,
			EntityType: domainaudit.EntityUser,
			EntityID:   user.ID.String(),
		})
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.Bool("super_admin", user.SuperAdmin))

	return &LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

func (s *AuthService) checkClubActive(ctx context.Context, user *identity.User) error {
	if user.ClubID == nil {
		return ErrInvalidCredentials
	}
	c, err := s.clubRepo.FindByID(ctx, *user.ClubID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !c.Active {
		s.logger.Warn("Login attempt for inactive club", zap.String("club_id", c.ID.String()))
		return ErrInvalidCredentials
	}
	return nil
}

// Logout revokes the presented token until it would have expired anyway.
// A nil claims value means no valid token was presented and is not an error.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentUser returns the user behind a session
func (s *AuthService) CurrentUser(ctx context.Context, claims *auth.Claims) (*UserResponse, error) {
	if claims == nil {
		return nil, shared.ErrUnauthorized
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.ErrUnauthorized
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func withUser(actor audit.Actor, userID *uuid.UUID, name string) audit.Actor {
	actor.UserID = userID
	actor.UserName = name
	return actor
}
