package club

import (
	"context"

	appfinance "github.com/clubfinanzas/backend/internal/application/finance"
	"github.com/clubfinanzas/backend/internal/application/tenant"
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrTransparencyDisabled is returned for the public summary of a club that
// has not opted in
var ErrTransparencyDisabled = shared.ForbiddenError("Este club no publica sus finanzas")

// PublicService serves the unauthenticated club page, addressed by slug
type PublicService struct {
	resolver  *tenant.Resolver
	configs   *ConfigService
	campaigns *appfinance.CampaignService
	summary   *appfinance.SummaryService
}

// NewPublicService creates a new PublicService
func NewPublicService(
	resolver *tenant.Resolver,
	configs *ConfigService,
	campaigns *appfinance.CampaignService,
	summary *appfinance.SummaryService,
) *PublicService {
	return &PublicService{
		resolver:  resolver,
		configs:   configs,
		campaigns: campaigns,
		summary:   summary,
	}
}

// PublicClubResponse is the public header of a club page
type PublicClubResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"nombre"`
	Slug               string    `json:"slug"`
	LogoURL            string    `json:"logoUrl,omitempty"`
	Description        string    `json:"descripcion,omitempty"`
	PublicTransparency bool      `json:"transparenciaPublica"`
}

// Club returns the public header of an active club
func (s *PublicService) Club(ctx context.Context, slug string) (*PublicClubResponse, error) {
	c, cfg, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	name := cfg.DisplayName
	if name == "" {
		name = c.Name
	}
	return &PublicClubResponse{
		ID:                 c.ID,
		Name:               name,
		Slug:               c.Slug,
		LogoURL:            c.LogoURL,
		Description:        cfg.Description,
		PublicTransparency: cfg.PublicTransparency,
	}, nil
}

// Campaigns returns the campaigns of a club with their progress capped at
// 100 percent. An empty status lists all of them.
func (s *PublicService) Campaigns(ctx context.Context, slug, status string) ([]appfinance.CampaignResponse, error) {
	c, err := s.resolver.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	var filter *finance.CampaignStatus
	if status != "" {
		st := finance.CampaignStatus(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "El estado debe ser activa, cerrada o completada")
		}
		filter = &st
	}
	items, err := s.campaigns.ListAll(ctx, c.ID, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		clampPercent(&items[i])
	}
	return items, nil
}

// Campaign returns one campaign of the club
func (s *PublicService) Campaign(ctx context.Context, slug string, id uuid.UUID) (*appfinance.CampaignResponse, error) {
	c, err := s.resolver.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	item, err := s.campaigns.Get(ctx, c.ID, id)
	if err != nil {
		return nil, err
	}
	clampPercent(item)
	return item, nil
}

// Summary returns the club's financial totals when it publishes them
func (s *PublicService) Summary(ctx context.Context, slug string) (*appfinance.SummaryResponse, error) {
	c, cfg, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !cfg.PublicTransparency {
		return nil, ErrTransparencyDisabled
	}
	return s.summary.Summary(ctx, c.ID)
}

func (s *PublicService) resolve(ctx context.Context, slug string) (*club.Club, *ConfigResponse, error) {
	c, err := s.resolver.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := s.configs.Get(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func clampPercent(item *appfinance.CampaignResponse) {
	item.Percent = finance.CampaignStats{Percent: item.Percent}.ClampedPercent()
}
