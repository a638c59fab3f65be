package finance

import (
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment (pago) is an immutable settlement against a Debt.
// It is only created through Debt.ApplyPayment.
type Payment struct {
	shared.BaseEntity
	ClubID uuid.UUID
	DebtID uuid.UUID
	Amount decimal.Decimal
	Notes  string
}

func newPayment(clubID, debtID uuid.UUID, amount decimal.Decimal, notes string) *Payment {
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		ClubID:     clubID,
		DebtID:     debtID,
		Amount:     amount,
		Notes:      strings.TrimSpace(notes),
	}
}
