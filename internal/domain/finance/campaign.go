package finance

import (
	"strings"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignStatus represents the lifecycle of a fundraising campaign
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "activa"
	CampaignStatusClosed    CampaignStatus = "cerrada"
	CampaignStatusCompleted CampaignStatus = "completada"
)

// IsValid checks if the status is known
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusClosed, CampaignStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s CampaignStatus) String() string {
	return string(s)
}

// Campaign (colecta) is a fundraising goal of a club
type Campaign struct {
	shared.ClubAggregateRoot
	Name        string
	Description string
	Goal        decimal.Decimal
	Status      CampaignStatus
	CloseDate   *time.Time
}

// NewCampaign creates an active campaign
func NewCampaign(clubID uuid.UUID, name, description string, goal decimal.Decimal, closeDate *time.Time) (*Campaign, error) {
	c := &Campaign{
		ClubAggregateRoot: shared.NewClubAggregateRoot(clubID),
		Status:            CampaignStatusActive,
	}
	if err := c.apply(name, description, goal, closeDate); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the campaign details and optionally its status
func (c *Campaign) Update(name, description string, goal decimal.Decimal, closeDate *time.Time, status CampaignStatus) error {
	if status == "" {
		status = c.Status
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "El estado debe ser activa, cerrada o completada")
	}
	if err := c.apply(name, description, goal, closeDate); err != nil {
		return err
	}
	c.Status = status
	c.IncrementVersion()
	return nil
}

// IsOpen reports whether the campaign still accepts contributions
func (c *Campaign) IsOpen() bool {
	return c.Status == CampaignStatusActive
}

func (c *Campaign) apply(name, description string, goal decimal.Decimal, closeDate *time.Time) error {
	name = strings.TrimSpace(name)
	if err := validateRequiredText(name, "El nombre", 200); err != nil {
		return err
	}
	if err := validateNonNegativeAmount(goal, "El objetivo"); err != nil {
		return err
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Goal = RoundMoney(goal)
	c.CloseDate = closeDate
	return nil
}
