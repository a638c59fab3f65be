package finance

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ContributionService records member contributions and pledges
type ContributionService struct {
	contributionRepo finance.ContributionRepository
	memberRepo       finance.MemberRepository
	campaignRepo     finance.CampaignRepository
	audit            *audit.Recorder
	logger           *zap.Logger
}

// NewContributionService creates a new ContributionService
func NewContributionService(
	contributionRepo finance.ContributionRepository,
	memberRepo finance.MemberRepository,
	campaignRepo finance.CampaignRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *ContributionService {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memberRepo:       memberRepo,
		campaignRepo:     campaignRepo,
		audit:            recorder,
		logger:           logger,
	}
}

// ContributionResponse represents a contribution in API responses
type ContributionResponse struct {
	ID            uuid.UUID       `json:"id"`
	MemberID      *uuid.UUID      `json:"miembroId"`
	MemberName    string          `json:"miembroNombre"`
	CampaignID    *uuid.UUID      `json:"colectaId"`
	Amount        decimal.Decimal `json:"monto"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodoPago,omitempty"`
	Notes         string          `json:"notas,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ContributionRequest is the body of contribution create and update
type ContributionRequest struct {
	MemberID      uuid.UUID       `json:"miembroId" binding:"required"`
	CampaignID    *uuid.UUID      `json:"colectaId"`
	Amount        decimal.Decimal `json:"monto" binding:"required,gt=0"`
	Status        string          `json:"estado" binding:"omitempty,oneof=aportado comprometido"`
	PaymentMethod string          `json:"metodoPago" binding:"max=50"`
	Notes         string          `json:"notas" binding:"max=2000"`
}

// ContributionListFilter is the query string of the contribution list
type ContributionListFilter struct {
	CampaignID *uuid.UUID `form:"colectaId"`
	MemberID   *uuid.UUID `form:"miembroId"`
	Status     string     `form:"estado" binding:"omitempty,oneof=aportado comprometido"`
	OrderBy    string     `form:"orderBy"`
	OrderDir   string     `form:"orderDir"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// List returns a page of contributions
func (s *ContributionService) List(ctx context.Context, clubID uuid.UUID, f ContributionListFilter) (shared.Paginated[ContributionResponse], error) {
	filter := finance.ContributionFilter{
		Filter:     normalizeFilter(f.Page, f.PageSize, "", f.OrderBy, f.OrderDir),
		CampaignID: f.CampaignID,
		MemberID:   f.MemberID,
	}
	if f.Status != "" {
		status := finance.ContributionStatus(f.Status)
		filter.Status = &status
	}

	contributions, total, err := s.contributionRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[ContributionResponse]{}, err
	}
	items := make([]ContributionResponse, len(contributions))
	for i := range contributions {
		items[i] = toContributionResponse(&contributions[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one contribution
func (s *ContributionService) Get(ctx context.Context, clubID, id uuid.UUID) (*ContributionResponse, error) {
	c, err := s.contributionRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	resp := toContributionResponse(c)
	return &resp, nil
}

// Create records a contribution of a club member
func (s *ContributionService) Create(ctx context.Context, clubID uuid.UUID, req ContributionRequest) (*ContributionResponse, error) {
	in, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	c, err := finance.NewContribution(clubID, in)
	if err != nil {
		return nil, err
	}
	if err := s.contributionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityContribution,
		EntityID:   c.ID.String(),
		Details:    contributionDetails(c),
	})

	resp := toContributionResponse(c)
	return &resp, nil
}

// Update replaces a contribution; the member name snapshot is refreshed
func (s *ContributionService) Update(ctx context.Context, clubID, id uuid.UUID, req ContributionRequest) (*ContributionResponse, error) {
	c, err := s.contributionRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	in, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	if err := c.Update(in); err != nil {
		return nil, err
	}
	if err := s.contributionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityContribution,
		EntityID:   c.ID.String(),
		Details:    contributionDetails(c),
	})

	resp := toContributionResponse(c)
	return &resp, nil
}

// Delete removes a contribution
func (s *ContributionService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	c, err := s.contributionRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.contributionRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityContribution,
		EntityID:   id.String(),
		Details:    contributionDetails(c),
	})
	return nil
}

func (s *ContributionService) resolveInput(ctx context.Context, clubID uuid.UUID, req ContributionRequest) (finance.ContributionInput, error) {
	member, err := loadMember(ctx, s.memberRepo, clubID, req.MemberID)
	if err != nil {
		return finance.ContributionInput{}, err
	}
	campaign, err := loadOptionalCampaign(ctx, s.campaignRepo, clubID, req.CampaignID)
	if err != nil {
		return finance.ContributionInput{}, err
	}
	return finance.ContributionInput{
		Member:        member,
		Campaign:      campaign,
		Amount:        req.Amount,
		Status:        finance.ContributionStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}, nil
}

func contributionDetails(c *finance.Contribution) map[string]any {
	return map[string]any{
		"miembro": c.MemberName,
		"monto":   c.Amount,
		"estado":  c.Status,
	}
}

func toContributionResponse(c *finance.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:            c.ID,
		MemberID:      c.MemberID,
		MemberName:    c.MemberName,
		CampaignID:    c.CampaignID,
		Amount:        c.Amount,
		Status:        c.Status.String(),
		PaymentMethod: c.PaymentMethod,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
