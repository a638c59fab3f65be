package finance

import (
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContributionStatus tells a confirmed payment apart from a pledge
type ContributionStatus string

const (
	ContributionStatusConfirmed ContributionStatus = "aportado"
	ContributionStatusPledged   ContributionStatus = "comprometido"
)

// IsValid checks if the status is known
func (s ContributionStatus) IsValid() bool {
	return s == ContributionStatusConfirmed || s == ContributionStatusPledged
}

// String returns the string representation
func (s ContributionStatus) String() string {
	return string(s)
}

// Contribution (aporte) is a member's payment or pledge, optionally toward a
// campaign. MemberName is a snapshot taken on every write so the record stays
// readable after the member is deleted and MemberID is cleared.
type Contribution struct {
	shared.ClubAggregateRoot
	MemberID      *uuid.UUID
	MemberName    string
	CampaignID    *uuid.UUID
	Amount        decimal.Decimal
	Status        ContributionStatus
	PaymentMethod string
	Notes         string
}

// ContributionInput carries the editable fields of a contribution
type ContributionInput struct {
	Member        *Member
	Campaign      *Campaign
	Amount        decimal.Decimal
	Status        ContributionStatus
	PaymentMethod string
	Notes         string
}

// NewContribution creates a contribution for a member of the same club
func NewContribution(clubID uuid.UUID, in ContributionInput) (*Contribution, error) {
	c := &Contribution{ClubAggregateRoot: shared.NewClubAggregateRoot(clubID)}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the contribution fields; the member may be reassigned
func (c *Contribution) Update(in ContributionInput) error {
	if err := c.apply(in); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (c *Contribution) apply(in ContributionInput) error {
	if in.Member == nil {
		return shared.InvalidInputError("El miembro es obligatorio")
	}
	if err := checkSameClub(c.ClubID, in.Member, in.Campaign); err != nil {
		return err
	}
	amount, err := positiveMoney(in.Amount, "El monto")
	if err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = ContributionStatusConfirmed
	}
	if !in.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "El estado debe ser aportado o comprometido")
	}

	memberID := in.Member.ID
	c.MemberID = &memberID
	c.MemberName = in.Member.Name
	c.CampaignID = nil
	if in.Campaign != nil {
		campaignID := in.Campaign.ID
		c.CampaignID = &campaignID
	}
	c.Amount = amount
	c.Status = in.Status
	c.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	c.Notes = strings.TrimSpace(in.Notes)
	return nil
}

// IsConfirmed reports whether the money was actually received
func (c *Contribution) IsConfirmed() bool {
	return c.Status == ContributionStatusConfirmed
}

// checkSameClub rejects references to a member or campaign of another club
func checkSameClub(clubID uuid.UUID, member *Member, campaign *Campaign) error {
	if member != nil && !member.BelongsTo(clubID) {
		return shared.ForbiddenError("El miembro pertenece a otro club")
	}
	if campaign != nil && !campaign.BelongsTo(clubID) {
		return shared.ForbiddenError("La colecta pertenece a otro club")
	}
	return nil
}
