package finance

import (
	"strings"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense (gasto) is club spending paid by a member, optionally charged to a
// campaign. PaidByName is a snapshot of the payer's name.
type Expense struct {
	shared.ClubAggregateRoot
	PaidByID    *uuid.UUID
	PaidByName  string
	CampaignID  *uuid.UUID
	Concept     string
	Amount      decimal.Decimal
	Category    string
	ExpenseType string
	ReceiptURL  string
	Notes       string
	Date        time.Time
}

// ExpenseInput carries the editable fields of an expense
type ExpenseInput struct {
	PaidBy      *Member
	Campaign    *Campaign
	Concept     string
	Amount      decimal.Decimal
	Category    string
	ExpenseType string
	ReceiptURL  string
	Notes       string
	Date        *time.Time
}

// NewExpense creates an expense
func NewExpense(clubID uuid.UUID, in ExpenseInput) (*Expense, error) {
	e := &Expense{ClubAggregateRoot: shared.NewClubAggregateRoot(clubID)}
	if in.Date == nil {
		now := time.Now()
		in.Date = &now
	}
	if err := e.apply(in); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the expense fields
func (e *Expense) Update(in ExpenseInput) error {
	if in.Date == nil {
		in.Date = &e.Date
	}
	if err := e.apply(in); err != nil {
		return err
	}
	e.IncrementVersion()
	return nil
}

func (e *Expense) apply(in ExpenseInput) error {
	if in.PaidBy == nil {
		return shared.InvalidInputError("Quien pagó es obligatorio")
	}
	if err := checkSameClub(e.ClubID, in.PaidBy, in.Campaign); err != nil {
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

	payerID := in.PaidBy.ID
	e.PaidByID = &payerID
	e.PaidByName = in.PaidBy.Name
	e.CampaignID = nil
	if in.Campaign != nil {
		campaignID := in.Campaign.ID
		e.CampaignID = &campaignID
	}
	e.Concept = concept
	e.Amount = amount
	e.Category = strings.TrimSpace(in.Category)
	if e.Category == "" {
		e.Category = "general"
	}
	e.ExpenseType = strings.TrimSpace(in.ExpenseType)
	e.ReceiptURL = strings.TrimSpace(in.ReceiptURL)
	e.Notes = strings.TrimSpace(in.Notes)
	e.Date = *in.Date
	return nil
}
