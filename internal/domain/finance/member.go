package finance

import (
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemberStatus represents whether a member is still part of the club
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "activo"
	MemberStatusInactive MemberStatus = "inactivo"
)

// IsValid checks if the status is known
func (s MemberStatus) IsValid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive
}

// String returns the string representation
func (s MemberStatus) String() string {
	return string(s)
}

// Member is a person belonging to a club. DuesDebt is a running figure
// kept by hand and is independent of the Debt ledger.
type Member struct {
	shared.ClubAggregateRoot
	Name     string
	Email    string
	Phone    string
	Status   MemberStatus
	DuesDebt decimal.Decimal
}

// NewMember creates an active member
func NewMember(clubID uuid.UUID, name, email, phone string, duesDebt decimal.Decimal) (*Member, error) {
	m := &Member{
		ClubAggregateRoot: shared.NewClubAggregateRoot(clubID),
		Status:            MemberStatusActive,
	}
	if err := m.apply(name, email, phone, duesDebt); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the member's details
func (m *Member) Update(name, email, phone string, duesDebt decimal.Decimal, status MemberStatus) error {
	if status == "" {
		status = m.Status
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "El estado debe ser activo o inactivo")
	}
	if err := m.apply(name, email, phone, duesDebt); err != nil {
		return err
	}
	m.Status = status
	m.IncrementVersion()
	return nil
}

func (m *Member) apply(name, email, phone string, duesDebt decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validateRequiredText(name, "El nombre", 200); err != nil {
		return err
	}
	if err := validateNonNegativeAmount(duesDebt, "El saldo de cuotas"); err != nil {
		return err
	}
	m.Name = name
	m.Email = strings.ToLower(strings.TrimSpace(email))
	m.Phone = strings.TrimSpace(phone)
	m.DuesDebt = RoundMoney(duesDebt)
	return nil
}
