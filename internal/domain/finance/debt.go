package finance

import (
	"fmt"
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus represents how much of a debt has been settled
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pendiente"      // nothing paid yet
	DebtStatusPartial DebtStatus = "parcial_pagada" // 0 < paid < original
	DebtStatusPaid    DebtStatus = "pagada"         // remaining is zero
)

// IsValid checks if the status is known
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusPending, DebtStatusPartial, DebtStatusPaid:
		return true
	}
	return false
}

// String returns the string representation
func (s DebtStatus) String() string {
	return string(s)
}

// DeriveDebtStatus maps paid/remaining amounts to a status
func DeriveDebtStatus(paid, remaining decimal.Decimal) DebtStatus {
	switch {
	case remaining.IsZero():
		return DebtStatusPaid
	case paid.IsZero():
		return DebtStatusPending
	default:
		return DebtStatusPartial
	}
}

// Debt (deuda) is a formal amount a member owes the club.
// RemainingAmount always equals OriginalAmount - PaidAmount.
type Debt struct {
	shared.ClubAggregateRoot
	MemberID        *uuid.UUID
	MemberName      string
	Concept         string
	OriginalAmount  decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          DebtStatus
	Notes           string
}

// NewDebt creates an unpaid debt of a member
func NewDebt(clubID uuid.UUID, member *Member, concept string, amount decimal.Decimal, notes string) (*Debt, error) {
	if member == nil {
		return nil, shared.InvalidInputError("El miembro es obligatorio")
	}
	if err := checkSameClub(clubID, member, nil); err != nil {
		return nil, err
	}
	concept = strings.TrimSpace(concept)
	if err := validateRequiredText(concept, "El concepto", 300); err != nil {
		return nil, err
	}
	amount, err := positiveMoney(amount, "El monto original")
	if err != nil {
		return nil, err
	}

	memberID := member.ID
	return &Debt{
		ClubAggregateRoot: shared.NewClubAggregateRoot(clubID),
		MemberID:          &memberID,
		MemberName:        member.Name,
		Concept:           concept,
		OriginalAmount:    amount,
		PaidAmount:        decimal.Zero,
		RemainingAmount:   amount,
		Status:            DebtStatusPending,
		Notes:             strings.TrimSpace(notes),
	}, nil
}

// ApplyPayment records a partial or full settlement and returns the new
// immutable Payment. The debt is left untouched when validation fails.
func (d *Debt) ApplyPayment(amount decimal.Decimal, notes string) (*Payment, error) {
	amount, err := positiveMoney(amount, "El monto del pago")
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return nil, shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("El monto del pago %s supera el saldo restante %s", amount.StringFixed(moneyPlaces), d.RemainingAmount.StringFixed(moneyPlaces)))
	}

	payment := newPayment(d.ClubID, d.ID, amount, notes)
	d.PaidAmount = d.PaidAmount.Add(amount)
	d.recompute()
	d.IncrementVersion()
	return payment, nil
}

// UpdateDetails changes the descriptive fields and, if it differs, the
// original amount. The new original may not be below what was already paid.
func (d *Debt) UpdateDetails(concept string, original decimal.Decimal, notes string) error {
	concept = strings.TrimSpace(concept)
	if err := validateRequiredText(concept, "El concepto", 300); err != nil {
		return err
	}
	original, err := positiveMoney(original, "El monto original")
	if err != nil {
		return err
	}
	if original.LessThan(d.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("El monto original no puede ser menor que lo ya pagado (%s)", d.PaidAmount.StringFixed(moneyPlaces)))
	}

	d.Concept = concept
	d.Notes = strings.TrimSpace(notes)
	d.OriginalAmount = original
	d.recompute()
	d.IncrementVersion()
	return nil
}

func (d *Debt) recompute() {
	d.RemainingAmount = d.OriginalAmount.Sub(d.PaidAmount)
	d.Status = DeriveDebtStatus(d.PaidAmount, d.RemainingAmount)
}

// IsSettled reports whether nothing remains to be paid
func (d *Debt) IsSettled() bool {
	return d.Status == DebtStatusPaid
}
