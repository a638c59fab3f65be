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

// ExpenseService records club spending
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	memberRepo   finance.MemberRepository
	campaignRepo finance.CampaignRepository
	audit        *audit.Recorder
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	memberRepo finance.MemberRepository,
	campaignRepo finance.CampaignRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		memberRepo:   memberRepo,
		campaignRepo: campaignRepo,
		audit:        recorder,
		logger:       logger,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PaidByID    *uuid.UUID      `json:"quienPagoId"`
	PaidByName  string          `json:"quienPagoNombre"`
	CampaignID  *uuid.UUID      `json:"colectaId"`
	Concept     string          `json:"concepto"`
	Amount      decimal.Decimal `json:"monto"`
	Category    string          `json:"categoria"`
	ExpenseType string          `json:"tipoGasto,omitempty"`
	ReceiptURL  string          `json:"comprobanteUrl,omitempty"`
	Notes       string          `json:"notas,omitempty"`
	Date        time.Time       `json:"fecha"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ExpenseRequest is the body of expense create and update
type ExpenseRequest struct {
	PaidByID    uuid.UUID       `json:"quienPagoId" binding:"required"`
	CampaignID  *uuid.UUID      `json:"colectaId"`
	Concept     string          `json:"concepto" binding:"required,max=300"`
	Amount      decimal.Decimal `json:"monto" binding:"required,gt=0"`
	Category    string          `json:"categoria" binding:"max=100"`
	ExpenseType string          `json:"tipoGasto" binding:"max=50"`
	ReceiptURL  string          `json:"comprobanteUrl" binding:"omitempty,url,max=500"`
	Notes       string          `json:"notas" binding:"max=2000"`
	Date        *time.Time      `json:"fecha"`
}

// ExpenseListFilter is the query string of the expense list
type ExpenseListFilter struct {
	Search     string     `form:"search"`
	CampaignID *uuid.UUID `form:"colectaId"`
	PaidByID   *uuid.UUID `form:"quienPagoId"`
	Category   string     `form:"categoria"`
	From       *time.Time `form:"desde" time_format:"2006-01-02"`
	To         *time.Time `form:"hasta" time_format:"2006-01-02"`
	OrderBy    string     `form:"orderBy"`
	OrderDir   string     `form:"orderDir"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// List returns a page of expenses
func (s *ExpenseService) List(ctx context.Context, clubID uuid.UUID, f ExpenseListFilter) (shared.Paginated[ExpenseResponse], error) {
	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "date"
	}
	filter := finance.ExpenseFilter{
		Filter:     normalizeFilter(f.Page, f.PageSize, f.Search, orderBy, f.OrderDir),
		CampaignID: f.CampaignID,
		PaidByID:   f.PaidByID,
		Category:   f.Category,
		From:       f.From,
		To:         endOfDay(f.To),
	}

	expenses, total, err := s.expenseRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}
	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = toExpenseResponse(&expenses[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one expense
func (s *ExpenseService) Get(ctx context.Context, clubID, id uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	resp := toExpenseResponse(e)
	return &resp, nil
}

// Create records an expense paid by a club member
func (s *ExpenseService) Create(ctx context.Context, clubID uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	in, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	e, err := finance.NewExpense(clubID, in)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityExpense,
		EntityID:   e.ID.String(),
		Details:    expenseDetails(e),
	})

	resp := toExpenseResponse(e)
	return &resp, nil
}

// Update replaces an expense; the payer name snapshot is refreshed
func (s *ExpenseService) Update(ctx context.Context, clubID, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	in, err := s.resolveInput(ctx, clubID, req)
	if err != nil {
		return nil, err
	}
	if err := e.Update(in); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityExpense,
		EntityID:   e.ID.String(),
		Details:    expenseDetails(e),
	})

	resp := toExpenseResponse(e)
	return &resp, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	e, err := s.expenseRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityExpense,
		EntityID:   id.String(),
		Details:    expenseDetails(e),
	})
	return nil
}

func (s *ExpenseService) resolveInput(ctx context.Context, clubID uuid.UUID, req ExpenseRequest) (finance.ExpenseInput, error) {
	payer, err := loadMember(ctx, s.memberRepo, clubID, req.PaidByID)
	if err != nil {
		return finance.ExpenseInput{}, err
	}
	campaign, err := loadOptionalCampaign(ctx, s.campaignRepo, clubID, req.CampaignID)
	if err != nil {
		return finance.ExpenseInput{}, err
	}
	return finance.ExpenseInput{
		PaidBy:      payer,
		Campaign:    campaign,
		Concept:     req.Concept,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseType: req.ExpenseType,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
		Date:        req.Date,
	}, nil
}

func expenseDetails(e *finance.Expense) map[string]any {
	return map[string]any{
		"concepto":  e.Concept,
		"monto":     e.Amount,
		"quienPago": e.PaidByName,
	}
}

func toExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		PaidByID:    e.PaidByID,
		PaidByName:  e.PaidByName,
		CampaignID:  e.CampaignID,
		Concept:     e.Concept,
		Amount:      e.Amount,
		Category:    e.Category,
		ExpenseType: e.ExpenseType,
		ReceiptURL:  e.ReceiptURL,
		Notes:       e.Notes,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

// endOfDay makes a date-only upper bound inclusive
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}
