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

// IncomeService records club revenue outside campaigns
type IncomeService struct {
	incomeRepo finance.IncomeRepository
	memberRepo finance.MemberRepository
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(
	incomeRepo finance.IncomeRepository,
	memberRepo finance.MemberRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *IncomeService {
	return &IncomeService{
		incomeRepo: incomeRepo,
		memberRepo: memberRepo,
		audit:      recorder,
		logger:     logger,
	}
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID         uuid.UUID       `json:"id"`
	MemberID   *uuid.UUID      `json:"miembroId"`
	MemberName string          `json:"miembroNombre,omitempty"`
	Concept    string          `json:"concepto"`
	Amount     decimal.Decimal `json:"monto"`
	Source     string          `json:"fuente"`
	Date       time.Time       `json:"fecha"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// IncomeRequest is the body of income create and update
type IncomeRequest struct {
	MemberID *uuid.UUID      `json:"miembroId"`
	Concept  string          `json:"concepto" binding:"required,max=300"`
	Amount   decimal.Decimal `json:"monto" binding:"required,gt=0"`
	Source   string          `json:"fuente" binding:"max=50"`
	Date     *time.Time      `json:"fecha"`
}

// IncomeListFilter is the query string of the income list
type IncomeListFilter struct {
	Search   string     `form:"search"`
	MemberID *uuid.UUID `form:"miembroId"`
	Source   string     `form:"fuente"`
	From     *time.Time `form:"desde" time_format:"2006-01-02"`
	To       *time.Time `form:"hasta" time_format:"2006-01-02"`
	OrderBy  string     `form:"orderBy"`
	OrderDir string     `form:"orderDir"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}

// List returns a page of income records
func (s *IncomeService) List(ctx context.Context, clubID uuid.UUID, f IncomeListFilter) (shared.Paginated[IncomeResponse], error) {
	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "date"
	}
	filter := finance.IncomeFilter{
		Filter:   normalizeFilter(f.Page, f.PageSize, f.Search, orderBy, f.OrderDir),
		MemberID: f.MemberID,
		Source:   f.Source,
		From:     f.From,
		To:       endOfDay(f.To),
	}

	incomes, total, err := s.incomeRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[IncomeResponse]{}, err
	}
	items := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		items[i] = toIncomeResponse(&incomes[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one income record
func (s *IncomeService) Get(ctx context.Context, clubID, id uuid.UUID) (*IncomeResponse, error) {
	in, err := s.incomeRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	resp := toIncomeResponse(in)
	return &resp, nil
}

// Create records income, optionally linked to a member
func (s *IncomeService) Create(ctx context.Context, clubID uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	input, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	income, err := finance.NewIncome(clubID, input)
	if err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityIncome,
		EntityID:   income.ID.String(),
		Details:    map[string]any{"concepto": income.Concept, "monto": income.Amount},
	})

	resp := toIncomeResponse(income)
	return &resp, nil
}

// Update replaces an income record
func (s *IncomeService) Update(ctx context.Context, clubID, id uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	input, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	if err := income.Update(input); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityIncome,
		EntityID:   income.ID.String(),
		Details:    map[string]any{"concepto": income.Concept, "monto": income.Amount},
	})

	resp := toIncomeResponse(income)
	return &resp, nil
}

// Delete removes an income record
func (s *IncomeService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	income, err := s.incomeRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.incomeRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityIncome,
		EntityID:   id.String(),
		Details:    map[string]any{"concepto": income.Concept, "monto": income.Amount},
	})
	return nil
}

func (s *IncomeService) resolveInput(ctx context.Context, clubID uuid.UUID, req IncomeRequest) (finance.IncomeInput, error) {
	member, err := loadOptionalMember(ctx, s.memberRepo, clubID, req.MemberID)
	if err != nil {
		return finance.IncomeInput{}, err
	}
	return finance.IncomeInput{
		Member:  member,
		Concept: req.Concept,
		Amount:  req.Amount,
		Source:  req.Source,
		Date:    req.Date,
	}, nil
}

func toIncomeResponse(i *finance.Income) IncomeResponse {
	return IncomeResponse{
		ID:         i.ID,
		MemberID:   i.MemberID,
		MemberName: i.MemberName,
		Concept:    i.Concept,
		Amount:     i.Amount,
		Source:     i.Source,
		Date:       i.Date,
		CreatedAt:  i.CreatedAt,
	}
}
