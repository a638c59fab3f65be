package club

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	appidentity "github.com/clubfinanzas/backend/internal/application/identity"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSlugTaken is returned when another club already uses the slug
var ErrSlugTaken = shared.NewDomainError("ALREADY_EXISTS", "El slug ya está en uso")

// Service is the platform-level club management used by super-admins
type Service struct {
	clubRepo   club.ClubRepository
	configRepo club.ConfigRepository
	userRepo   identity.UserRepository
	memberRepo finance.MemberRepository
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewService creates a new club management service
func NewService(
	clubRepo club.ClubRepository,
	configRepo club.ConfigRepository,
	userRepo identity.UserRepository,
	memberRepo finance.MemberRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		clubRepo:   clubRepo,
		configRepo: configRepo,
		userRepo:   userRepo,
		memberRepo: memberRepo,
		audit:      recorder,
		logger:     logger,
	}
}

// ClubResponse represents a club in API responses
type ClubResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nombre"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"activo"`
	Plan      string    `json:"plan"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateClubRequest is the body of club creation. An empty slug is
// derived from the name.
type CreateClubRequest struct {
	Name    string `json:"nombre" binding:"required,max=200"`
	Slug    string `json:"slug" binding:"omitempty,slug,max=60"`
	Plan    string `json:"plan" binding:"omitempty,oneof=free basico pro"`
	LogoURL string `json:"logoUrl" binding:"omitempty,url,max=500"`
}

// UpdateClubRequest is the body of club update
type UpdateClubRequest struct {
	Name    string `json:"nombre" binding:"required,max=200"`
	Slug    string `json:"slug" binding:"omitempty,slug,max=60"`
	Plan    string `json:"plan" binding:"omitempty,oneof=free basico pro"`
	LogoURL string `json:"logoUrl" binding:"omitempty,url,max=500"`
	Active  *bool  `json:"activo"`
}

// CreateAdminRequest creates the first administrator of a club
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"nombre" binding:"required,max=200"`
}

// ClubListFilter is the query string of the club list
type ClubListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"activo"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// PlatformStats are the platform-wide counters
type PlatformStats struct {
	Clubs       int64 `json:"clubes"`
	ActiveClubs int64 `json:"clubesActivos"`
	Users       int64 `json:"usuarios"`
	Members     int64 `json:"miembros"`
}

// List returns a page of clubs
func (s *Service) List(ctx context.Context, f ClubListFilter) (shared.Paginated[ClubResponse], error) {
	filter := club.ClubFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
			OrderBy:  "name",
			OrderDir: "asc",
		},
		Active: f.Active,
	}
	filter.Normalize()

	clubs, total, err := s.clubRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ClubResponse]{}, err
	}
	items := make([]ClubResponse, len(clubs))
	for i := range clubs {
		items[i] = ToClubResponse(&clubs[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one club
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClubResponse, error) {
	c, err := s.clubRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClubResponse(c)
	return &resp, nil
}

// Create registers a new club with its default configuration
func (s *Service) Create(ctx context.Context, createdBy *uuid.UUID, req CreateClubRequest) (*ClubResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = club.ToSlug(req.Name)
	}
	if err := s.ensureSlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}

	c, err := club.NewClub(req.Name, slug, createdBy)
	if err != nil {
		return nil, err
	}
	if req.Plan != "" || req.LogoURL != "" {
		if err := c.Update(req.Name, req.LogoURL, club.Plan(req.Plan)); err != nil {
			return nil, err
		}
	}
	if err := s.clubRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	if err := s.configRepo.Save(ctx, club.DefaultConfig(c)); err != nil {
		// the config is created lazily on first read as well
		s.logger.Warn("Failed to create default club config", zap.String("club_id", c.ID.String()), zap.Error(err))
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     c.ID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityClub,
		EntityID:   c.ID.String(),
		Details:    map[string]any{"nombre": c.Name, "slug": c.Slug},
	})
	s.logger.Info("Club created", zap.String("club_id", c.ID.String()), zap.String("slug", c.Slug))

	resp := ToClubResponse(c)
	return &resp, nil
}

// Update changes a club's details, slug and active flag
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClubRequest) (*ClubResponse, error) {
	c, err := s.clubRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.LogoURL, club.Plan(req.Plan)); err != nil {
		return nil, err
	}
	if req.Slug != "" && req.Slug != c.Slug {
		if err := s.ensureSlugFree(ctx, req.Slug, c.ID); err != nil {
			return nil, err
		}
		if err := c.ChangeSlug(req.Slug); err != nil {
			return nil, err
		}
	}

	action := domainaudit.ActionUpdate
	if req.Active != nil && *req.Active != c.Active {
		if *req.Active {
			c.Activate()
			action = domainaudit.ActionActivate
		} else {
			c.Deactivate()
			action = domainaudit.ActionDeactivate
		}
	}
	if err := s.clubRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     c.ID,
		Action:     action,
		EntityType: domainaudit.EntityClub,
		EntityID:   c.ID.String(),
		Details:    map[string]any{"nombre": c.Name, "slug": c.Slug, "activo": c.Active},
	})

	resp := ToClubResponse(c)
	return &resp, nil
}

// Delete removes a club and everything it owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.clubRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return err
	}
	// the club's own audit trail is gone with it, so only the log keeps a trace
	s.logger.Warn("Club deleted",
		zap.String("club_id", id.String()),
		zap.String("slug", c.Slug),
		zap.Stringp("actor_id", actorID(ctx)))
	return nil
}

// CreateAdmin adds an administrator to a club
func (s *Service) CreateAdmin(ctx context.Context, clubID uuid.UUID, req CreateAdminRequest) (*appidentity.UserResponse, error) {
	if _, err := s.clubRepo.FindByID(ctx, clubID); err != nil {
		return nil, err
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, identity.NormalizeEmail(req.Email), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appidentity.ErrEmailTaken
	}

	user, err := identity.NewUser(clubID, req.Email, req.Password, req.Name, identity.RoleAdmin)
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
	s.logger.Info("Club admin created",
		zap.String("club_id", clubID.String()),
		zap.String("user_id", user.ID.String()))

	resp := appidentity.ToUserResponse(user)
	return &resp, nil
}

// Stats returns the platform-wide counters
func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	clubs, err := s.clubRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active := true
	_, activeClubs, err := s.clubRepo.FindAll(ctx, club.ClubFilter{
		Filter: shared.Filter{Page: 1, PageSize: 1},
		Active: &active,
	})
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		Clubs:       clubs,
		ActiveClubs: activeClubs,
		Users:       users,
		Members:     members,
	}, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug string, excludeID uuid.UUID) error {
	if err := club.ValidateSlug(slug); err != nil {
		return err
	}
	exists, err := s.clubRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSlugTaken
	}
	return nil
}

// ToClubResponse converts a domain club into its API shape
func ToClubResponse(c *club.Club) ClubResponse {
	return ClubResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Active:    c.Active,
		Plan:      c.Plan.String(),
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func actorID(ctx context.Context) *string {
	actor := audit.ActorFromContext(ctx)
	if actor.UserID == nil {
		return nil
	}
	id := actor.UserID.String()
	return &id
}

