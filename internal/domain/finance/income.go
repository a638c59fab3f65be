package finance

import (
	"strings"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income (ingreso) is club revenue not tied to a campaign
type Income struct {
	shared.ClubAggregateRoot
	MemberID   *uuid.UUID
	MemberName string
	Concept    string
	Amount     decimal.Decimal
	Source     string
	Date       time.Time
}

// IncomeInput carries the editable fields of an income record
type IncomeInput struct {
	Member  *Member
	Concept string
	Amount  decimal.Decimal
	Source  string
	Date    *time.Time
}

// NewIncome creates an income record
func NewIncome(clubID uuid.UUID, in IncomeInput) (*Income, error) {
	i := &Income{ClubAggregateRoot: shared.NewClubAggregateRoot(clubID)}
	if in.Date == nil {
		now := time.Now()
		in.Date = &now
	}
	if err := i.apply(in); err != nil {
		return nil, err
	}
	return i, nil
}

// Update replaces the income fields
func (i *Income) Update(in IncomeInput) error {
	if in.Date == nil {
		in.Date = &i.Date
	}
	if err := i.apply(in); err != nil {
		return err
	}
	i.IncrementVersion()
	return nil
}

func (i *Income) apply(in IncomeInput) error {
	if err := checkSameClub(i.ClubID, in.Member, nil); err != nil {
		return err
	}
	concept := strings.TrimSpace(in.Concept)
	if err := validateRequiredText(concept, "El concepto", 300); err != nil {
		return err
	}
	amount, err := positiveMoney(in.Amount, "El monto")
	if err != nil {
		return err
	}

	i.MemberID = nil
	i.MemberName = ""
	if in.Member != nil {
		memberID := in.Member.ID
		i.MemberID = &memberID
		i.MemberName = in.Member.Name
	}
	i.Concept = concept
	i.Amount = amount
	i.Source = strings.TrimSpace(in.Source)
	if i.Source == "" {
		i.Source = "otro"
	}
	i.Date = *in.Date
	return nil
}
