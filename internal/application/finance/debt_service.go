package finance

import (
	"context"
	"errors"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtService manages member debts and their payment ledger
type DebtService struct {
	debtRepo   finance.DebtRepository
	memberRepo finance.MemberRepository
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo finance.DebtRepository,
	memberRepo finance.MemberRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *DebtService {
	return &DebtService{
		debtRepo:   debtRepo,
		memberRepo: memberRepo,
		audit:      recorder,
		logger:     logger,
	}
}

// ===================== Debt Operations =====================

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID              uuid.UUID       `json:"id"`
	MemberID        *uuid.UUID      `json:"miembroId"`
	MemberName      string          `json:"miembroNombre"`
	Concept         string          `json:"concepto"`
	OriginalAmount  decimal.Decimal `json:"montoOriginal"`
	PaidAmount      decimal.Decimal `json:"montoPagado"`
	RemainingAmount decimal.Decimal `json:"montoRestante"`
	Status          string          `json:"estado"`
	Notes           string          `json:"notas,omitempty"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateDebtRequest is the body of debt creation
type CreateDebtRequest struct {
	MemberID       uuid.UUID       `json:"miembroId" binding:"required"`
	Concept        string          `json:"concepto" binding:"required,max=300"`
	OriginalAmount decimal.Decimal `json:"montoOriginal" binding:"required,gt=0"`
	Notes          string          `json:"notas" binding:"max=2000"`
}

// UpdateDebtRequest is the body of debt update. The member cannot change.
type UpdateDebtRequest struct {
	Concept        string          `json:"concepto" binding:"required,max=300"`
	OriginalAmount decimal.Decimal `json:"montoOriginal" binding:"required,gt=0"`
	Notes          string          `json:"notas" binding:"max=2000"`
}

// DebtListFilter is the query string of the debt list
type DebtListFilter struct {
	Search   string     `form:"search"`
	MemberID *uuid.UUID `form:"miembroId"`
	Status   string     `form:"estado" binding:"omitempty,oneof=pendiente parcial_pagada pagada"`
	OrderBy  string     `form:"orderBy"`
	OrderDir string     `form:"orderDir"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}

// List returns a page of debts
func (s *DebtService) List(ctx context.Context, clubID uuid.UUID, f DebtListFilter) (shared.Paginated[DebtResponse], error) {
	filter := finance.DebtFilter{
		Filter:   normalizeFilter(f.Page, f.PageSize, f.Search, f.OrderBy, f.OrderDir),
		MemberID: f.MemberID,
	}
	if f.Status != "" {
		status := finance.DebtStatus(f.Status)
		filter.Status = &status
	}

	debts, total, err := s.debtRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[DebtResponse]{}, err
	}
	items := make([]DebtResponse, len(debts))
	for i := range debts {
		items[i] = toDebtResponse(&debts[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one debt
func (s *DebtService) Get(ctx context.Context, clubID, id uuid.UUID) (*DebtResponse, error) {
	d, err := s.debtRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	resp := toDebtResponse(d)
	return &resp, nil
}

// Create registers an unpaid debt of a member
func (s *DebtService) Create(ctx context.Context, clubID uuid.UUID, req CreateDebtRequest) (*DebtResponse, error) {
	member, err := loadMember(ctx, s.memberRepo, clubID, req.MemberID)
	if err != nil {
		return nil, err
	}
	d, err := finance.NewDebt(clubID, member, req.Concept, req.OriginalAmount, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.debtRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityDebt,
		EntityID:   d.ID.String(),
		Details:    map[string]any{"miembro": d.MemberName, "concepto": d.Concept, "montoOriginal": d.OriginalAmount},
	})

	resp := toDebtResponse(d)
	return &resp, nil
}

// Update changes the concept, notes and original amount of a debt; the
// status is derived again from the new remaining amount
func (s *DebtService) Update(ctx context.Context, clubID, id uuid.UUID, req UpdateDebtRequest) (*DebtResponse, error) {
	d, err := s.debtRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if err := d.UpdateDetails(req.Concept, req.OriginalAmount, req.Notes); err != nil {
		return nil, err
	}
	if err := s.debtRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityDebt,
		EntityID:   d.ID.String(),
		Details:    map[string]any{"concepto": d.Concept, "montoOriginal": d.OriginalAmount, "estado": d.Status},
	})

	resp := toDebtResponse(d)
	return &resp, nil
}

// Delete removes a debt together with its payments
func (s *DebtService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	d, err := s.debtRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.debtRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityDebt,
		EntityID:   id.String(),
		Details:    map[string]any{"miembro": d.MemberName, "concepto": d.Concept, "montoPagado": d.PaidAmount},
	})
	return nil
}

// ===================== Payment Operations =====================

// PaymentResponse represents a debt payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	DebtID    uuid.UUID       `json:"deudaId"`
	Amount    decimal.Decimal `json:"monto"`
	Notes     string          `json:"notas,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RegisterPaymentRequest is the body of a debt payment
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"monto" binding:"required,gt=0"`
	Notes  string          `json:"notas" binding:"max=2000"`
}

// PaymentResult is the stored payment and the debt after it
type PaymentResult struct {
	Payment PaymentResponse `json:"pago"`
	Debt    DebtResponse    `json:"deuda"`
}

// RegisterPayment settles part or all of a debt. The payment row and the
// debt update are written atomically, and the update only applies while the
// paid amount is still the one read here; a concurrent payment makes this
// call fail with a concurrency conflict instead of overpaying.
func (s *DebtService) RegisterPayment(ctx context.Context, clubID, debtID uuid.UUID, req RegisterPaymentRequest) (*PaymentResult, error) {
	d, err := s.debtRepo.FindByIDForClub(ctx, clubID, debtID)
	if err != nil {
		return nil, err
	}
	previousPaid := d.PaidAmount

	payment, err := d.ApplyPayment(req.Amount, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.debtRepo.SavePayment(ctx, d, payment, previousPaid); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			logger.L(ctx, s.logger).Warn("Concurrent payment on debt",
				zap.String("debt_id", debtID.String()))
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionPayment,
		EntityType: domainaudit.EntityPayment,
		EntityID:   payment.ID.String(),
		Details: map[string]any{
			"deudaId":       d.ID,
			"monto":         payment.Amount,
			"montoRestante": d.RemainingAmount,
			"estado":        d.Status,
		},
	})
	logger.L(ctx, s.logger).Info("Debt payment registered",
		zap.String("debt_id", d.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("status", d.Status.String()))

	return &PaymentResult{
		Payment: toPaymentResponse(payment),
		Debt:    toDebtResponse(d),
	}, nil
}

// ListPayments returns the payments of a debt, newest first
func (s *DebtService) ListPayments(ctx context.Context, clubID, debtID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.debtRepo.FindByIDForClub(ctx, clubID, debtID); err != nil {
		return nil, err
	}
	payments, err := s.debtRepo.FindPayments(ctx, clubID, debtID)
	if err != nil {
		return nil, err
	}
	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = toPaymentResponse(&payments[i])
	}
	return items, nil
}

func toDebtResponse(d *finance.Debt) DebtResponse {
	return DebtResponse{
		ID:              d.ID,
		MemberID:        d.MemberID,
		MemberName:      d.MemberName,
		Concept:         d.Concept,
		OriginalAmount:  d.OriginalAmount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status.String(),
		Notes:           d.Notes,
		Version:         d.Version,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		DebtID:    p.DebtID,
		Amount:    p.Amount,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
