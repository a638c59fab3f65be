package identity

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmailTaken is returned when another account already uses the email
var ErrEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "El email ya está registrado")

// UserService manages the administrative users of a club
type UserService struct {
	userRepo   identity.UserRepository
	guardrails *identity.Guardrails
	blacklist  auth.TokenBlacklist
	tokenTTL   time.Duration
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewUserService creates a new user service. tokenTTL is the session
// lifetime, used to keep user-wide revocations around as long as any
// token they cover.
func NewUserService(
	userRepo identity.UserRepository,
	blacklist auth.TokenBlacklist,
	tokenTTL time.Duration,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		guardrails: identity.NewGuardrails(userRepo),
		blacklist:  blacklist,
		tokenTTL:   tokenTTL,
		audit:      recorder,
		logger:     logger,
	}
}

// List returns the users of a club
func (s *UserService) List(ctx context.Context, clubID uuid.UUID, f UserListFilter) (shared.Paginated[UserResponse], error) {
	filter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
			OrderBy:  "name",
			OrderDir: "asc",
		},
		Active: f.Active,
	}
	if f.Role != "" {
		role := identity.Role(f.Role)
		filter.Role = &role
	}
	filter.Normalize()

	users, total, err := s.userRepo.FindByClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one user of the club
func (s *UserService) Get(ctx context.Context, clubID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findInClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Create adds a user to the club
func (s *UserService) Create(ctx context.Context, clubID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(clubID, req.Email, req.Password, req.Name, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
		Details:    map[string]any{"email": user.Email, "rol": user.Role},
	})
	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("club_id", clubID.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes a user's profile and optionally its password
func (s *UserService) Update(ctx context.Context, clubID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findInClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, user.ID); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Name, req.Email); err != nil {
		return nil, err
	}
	passwordChanged := req.Password != ""
	if passwordChanged {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if passwordChanged {
		s.invalidateSessions(ctx, user.ID)
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
		Details:    map[string]any{"email": user.Email, "passwordChanged": passwordChanged},
	})

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangeRole assigns a role; demoting the last active admin is rejected
func (s *UserService) ChangeRole(ctx context.Context, clubID, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	role := identity.Role(req.Role)
	user, err := s.guardrails.CanChangeRole(ctx, userID, clubID, role)
	if err != nil {
		return nil, err
	}
	previous := user.Role
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if previous == role {
		resp := ToUserResponse(user)
		return &resp, nil
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	// sessions carry the role, so they must be reissued
	s.invalidateSessions(ctx, user.ID)

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionRoleChange,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
		Details:    map[string]any{"anterior": previous, "nuevo": role},
	})
	s.logger.Info("User role changed",
		zap.String("user_id", user.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", role.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables a user; the last active admin cannot be deactivated
func (s *UserService) Deactivate(ctx context.Context, clubID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.guardrails.CanDeactivateUser(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateSessions(ctx, user.ID)

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDeactivate,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
	})

	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate re-enables a user
func (s *UserService) Activate(ctx context.Context, clubID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findInClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if user.Active {
		resp := ToUserResponse(user)
		return &resp, nil
	}
	user.Activate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionActivate,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
	})

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user. Users cannot delete themselves and the last
// active admin cannot be removed.
func (s *UserService) Delete(ctx context.Context, clubID, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return shared.ForbiddenError("No puede eliminar su propia cuenta")
	}
	user, err := s.guardrails.CanDeleteUser(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.invalidateSessions(ctx, user.ID)

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityUser,
		EntityID:   user.ID.String(),
		Details:    map[string]any{"email": user.Email},
	})
	s.logger.Info("User deleted",
		zap.String("user_id", user.ID.String()),
		zap.String("club_id", clubID.String()))
	return nil
}

func (s *UserService) findInClub(ctx context.Context, clubID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.BelongsTo(clubID) {
		return nil, shared.ForbiddenError("El usuario no pertenece a este club")
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID uuid.UUID) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, identity.NormalizeEmail(email), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	return nil
}

// invalidateSessions revokes every token issued to the user so far. The
// change itself is already stored, so a revocation failure is only logged.
func (s *UserService) invalidateSessions(ctx context.Context, userID uuid.UUID) {
	if err := s.blacklist.InvalidateUserTokens(ctx, userID.String(), s.tokenTTL); err != nil {
		s.logger.Error("Failed to invalidate user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

