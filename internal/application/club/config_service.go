package club

import (
	"context"
	"errors"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConfigService reads and changes the public settings of a club
type ConfigService struct {
	clubRepo   club.ClubRepository
	configRepo club.ConfigRepository
	audit      *audit.Recorder
}

// NewConfigService creates a new ConfigService
func NewConfigService(clubRepo club.ClubRepository, configRepo club.ConfigRepository, recorder *audit.Recorder) *ConfigService {
	return &ConfigService{
		clubRepo:   clubRepo,
		configRepo: configRepo,
		audit:      recorder,
	}
}

// ConfigResponse represents the club settings in API responses
type ConfigResponse struct {
	ClubID             uuid.UUID `json:"clubId"`
	PublicTransparency bool      `json:"transparenciaPublica"`
	DisplayName        string    `json:"nombrePublico"`
	Description        string    `json:"descripcionPublica"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UpdateConfigRequest is the body of the settings update
type UpdateConfigRequest struct {
	PublicTransparency *bool  `json:"transparenciaPublica" binding:"required"`
	DisplayName        string `json:"nombrePublico" binding:"max=200"`
	Description        string `json:"descripcionPublica" binding:"max=2000"`
}

// Get returns the settings of a club, creating the defaults on first read
func (s *ConfigService) Get(ctx context.Context, clubID uuid.UUID) (*ConfigResponse, error) {
	cfg, err := s.load(ctx, clubID)
	if err != nil {
		return nil, err
	}
	resp := toConfigResponse(cfg)
	return &resp, nil
}

// Update replaces the public settings
func (s *ConfigService) Update(ctx context.Context, clubID uuid.UUID, req UpdateConfigRequest) (*ConfigResponse, error) {
	cfg, err := s.load(ctx, clubID)
	if err != nil {
		return nil, err
	}
	transparency := cfg.PublicTransparency
	if req.PublicTransparency != nil {
		transparency = *req.PublicTransparency
	}
	if err := cfg.Update(transparency, req.DisplayName, req.Description); err != nil {
		return nil, err
	}
	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionConfigure,
		EntityType: domainaudit.EntityConfig,
		EntityID:   cfg.ID.String(),
		Details:    map[string]any{"transparenciaPublica": cfg.PublicTransparency, "nombrePublico": cfg.DisplayName},
	})

	resp := toConfigResponse(cfg)
	return &resp, nil
}

func (s *ConfigService) load(ctx context.Context, clubID uuid.UUID) (*club.Config, error) {
	cfg, err := s.configRepo.FindByClub(ctx, clubID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	cfg = club.DefaultConfig(c)
	if err := s.configRepo.Save(ctx, cfg); err != nil {
		// a concurrent first read may have created it already
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.configRepo.FindByClub(ctx, clubID)
		}
		return nil, err
	}
	return cfg, nil
}

func toConfigResponse(cfg *club.Config) ConfigResponse {
	return ConfigResponse{
		ClubID:             cfg.ClubID,
		PublicTransparency: cfg.PublicTransparency,
		DisplayName:        cfg.DisplayName,
		Description:        cfg.Description,
		UpdatedAt:          cfg.UpdatedAt,
	}
}
