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

// CampaignService manages campaigns and derives their statistics
type CampaignService struct {
	campaignRepo     finance.CampaignRepository
	contributionRepo finance.ContributionRepository
	expenseRepo      finance.ExpenseRepository
	audit            *audit.Recorder
	logger           *zap.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	campaignRepo finance.CampaignRepository,
	contributionRepo finance.ContributionRepository,
	expenseRepo finance.ExpenseRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo:     campaignRepo,
		contributionRepo: contributionRepo,
		expenseRepo:      expenseRepo,
		audit:            recorder,
		logger:           logger,
	}
}

// CampaignStatsResponse are the derived figures of a campaign
type CampaignStatsResponse struct {
	TotalConfirmed    decimal.Decimal `json:"totalAportado"`
	TotalPledged      decimal.Decimal `json:"totalComprometido"`
	TotalExpenses     decimal.Decimal `json:"totalGastos"`
	Balance           decimal.Decimal `json:"balance"`
	Percent           int64           `json:"porcentaje"`
	Shortfall         decimal.Decimal `json:"faltante"`
	ContributionCount int             `json:"cantidadAportes"`
	ExpenseCount      int             `json:"cantidadGastos"`
}

// CampaignResponse represents a campaign with its statistics
type CampaignResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClubID      uuid.UUID       `json:"clubId"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	Goal        decimal.Decimal `json:"objetivo"`
	Status      string          `json:"estado"`
	CloseDate   *time.Time      `json:"fechaCierre,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	CampaignStatsResponse
}

// CampaignRequest is the body of campaign create and update
type CampaignRequest struct {
	Name        string           `json:"nombre" binding:"required,max=200"`
	Description string           `json:"descripcion" binding:"max=2000"`
	Goal        *decimal.Decimal `json:"objetivo" binding:"required,gte=0"`
	Status      string           `json:"estado" binding:"omitempty,oneof=activa cerrada completada"`
	CloseDate   *time.Time       `json:"fechaCierre"`
}

// CampaignListFilter is the query string of the campaign list
type CampaignListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"estado" binding:"omitempty,oneof=activa cerrada completada"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// List returns a page of campaigns with their statistics
func (s *CampaignService) List(ctx context.Context, clubID uuid.UUID, f CampaignListFilter) (shared.Paginated[CampaignResponse], error) {
	filter := finance.CampaignFilter{Filter: normalizeFilter(f.Page, f.PageSize, f.Search, f.OrderBy, f.OrderDir)}
	if f.Status != "" {
		status := finance.CampaignStatus(f.Status)
		filter.Status = &status
	}

	campaigns, total, err := s.campaignRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[CampaignResponse]{}, err
	}
	items, err := s.withStats(ctx, clubID, campaigns)
	if err != nil {
		return shared.Paginated[CampaignResponse]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListAll returns every campaign of the club with the given status (all
// statuses when nil), newest first, with statistics
func (s *CampaignService) ListAll(ctx context.Context, clubID uuid.UUID, status *finance.CampaignStatus) ([]CampaignResponse, error) {
	filter := finance.CampaignFilter{
		Filter: shared.Filter{Page: 1, PageSize: 500, OrderBy: "created_at", OrderDir: "desc"},
		Status: status,
	}
	campaigns, _, err := s.campaignRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, clubID, campaigns)
}

// Get returns one campaign with its statistics
func (s *CampaignService) Get(ctx context.Context, clubID, id uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.withStats(ctx, clubID, []finance.Campaign{*c})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create opens a new campaign
func (s *CampaignService) Create(ctx context.Context, clubID uuid.UUID, req CampaignRequest) (*CampaignResponse, error) {
	goal := decimal.Zero
	if req.Goal != nil {
		goal = *req.Goal
	}
	c, err := finance.NewCampaign(clubID, req.Name, req.Description, goal, req.CloseDate)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && finance.CampaignStatus(req.Status) != c.Status {
		if err := c.Update(req.Name, req.Description, goal, req.CloseDate, finance.CampaignStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if err := s.campaignRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityCampaign,
		EntityID:   c.ID.String(),
		Details:    map[string]any{"nombre": c.Name, "objetivo": c.Goal},
	})

	resp := newCampaignResponse(c, finance.ComputeCampaignStats(c.Goal, nil, nil))
	return &resp, nil
}

// Update replaces a campaign's details and status
func (s *CampaignService) Update(ctx context.Context, clubID, id uuid.UUID, req CampaignRequest) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	goal := c.Goal
	if req.Goal != nil {
		goal = *req.Goal
	}
	previousStatus := c.Status
	if err := c.Update(req.Name, req.Description, goal, req.CloseDate, finance.CampaignStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	details := map[string]any{"nombre": c.Name, "objetivo": c.Goal}
	if previousStatus != c.Status {
		details["estadoAnterior"] = previousStatus
		details["estado"] = c.Status
	}
	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityCampaign,
		EntityID:   c.ID.String(),
		Details:    details,
	})

	items, err := s.withStats(ctx, clubID, []finance.Campaign{*c})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Delete removes a campaign; its contributions and expenses stay as
// general club records
func (s *CampaignService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	c, err := s.campaignRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.campaignRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityCampaign,
		EntityID:   id.String(),
		Details:    map[string]any{"nombre": c.Name},
	})
	return nil
}

// withStats loads the contributions and expenses of all campaigns in two
// queries and attaches the computed statistics
func (s *CampaignService) withStats(ctx context.Context, clubID uuid.UUID, campaigns []finance.Campaign) ([]CampaignResponse, error) {
	items := make([]CampaignResponse, 0, len(campaigns))
	if len(campaigns) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, len(campaigns))
	for i := range campaigns {
		ids[i] = campaigns[i].ID
	}
	contributions, err := s.contributionRepo.FindByCampaigns(ctx, clubID, ids)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByCampaigns(ctx, clubID, ids)
	if err != nil {
		return nil, err
	}

	stats := finance.GroupStatsByCampaign(campaigns, contributions, expenses)
	for i := range campaigns {
		items = append(items, newCampaignResponse(&campaigns[i], stats[campaigns[i].ID]))
	}
	return items, nil
}

func newCampaignResponse(c *finance.Campaign, stats finance.CampaignStats) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID,
		ClubID:      c.ClubID,
		Name:        c.Name,
		Description: c.Description,
		Goal:        c.Goal,
		Status:      c.Status.String(),
		CloseDate:   c.CloseDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		CampaignStatsResponse: CampaignStatsResponse{
			TotalConfirmed:    finance.RoundMoney(stats.Confirmed),
			TotalPledged:      finance.RoundMoney(stats.Pledged),
			TotalExpenses:     finance.RoundMoney(stats.Expenses),
			Balance:           finance.RoundMoney(stats.Balance),
			Percent:           stats.Percent,
			Shortfall:         finance.RoundMoney(stats.Shortfall),
			ContributionCount: stats.ContributionCount,
			ExpenseCount:      stats.ExpenseCount,
		},
	}
}
