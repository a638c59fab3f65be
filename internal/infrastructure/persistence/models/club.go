package models

import (
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClubModel is the persistence model for the Club aggregate root.
type ClubModel struct {
	AggregateModel
	Name      string     `gorm:"type:varchar(200);not null"`
	Slug      string     `gorm:"type:varchar(60);not null;uniqueIndex"`
	Active    bool       `gorm:"not null"`
	Plan      club.Plan  `gorm:"type:varchar(20);not null"`
	LogoURL   string     `gorm:"type:varchar(500)"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ClubModel) TableName() string {
	return "clubs"
}

// ToDomain converts the persistence model to a domain Club entity.
func (m *ClubModel) ToDomain() *club.Club {
	return &club.Club{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Active:            m.Active,
		Plan:              m.Plan,
		LogoURL:           m.LogoURL,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Club entity.
func (m *ClubModel) FromDomain(c *club.Club) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Active = c.Active
	m.Plan = c.Plan
	m.LogoURL = c.LogoURL
	m.CreatedBy = c.CreatedBy
}

// ClubModelFromDomain creates a persistence model from a domain Club entity.
func ClubModelFromDomain(c *club.Club) *ClubModel {
	m := &ClubModel{}
	m.FromDomain(c)
	return m
}

// ClubConfigModel is the persistence model for the public settings of a club.
type ClubConfigModel struct {
	BaseModel
	ClubID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PublicTransparency bool      `gorm:"not null"`
	DisplayName        string    `gorm:"type:varchar(200)"`
	Description        string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClubConfigModel) TableName() string {
	return "club_configs"
}

// ToDomain converts the persistence model to a domain Config.
func (m *ClubConfigModel) ToDomain() *club.Config {
	return &club.Config{
		BaseEntity:         shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ClubID:             m.ClubID,
		PublicTransparency: m.PublicTransparency,
		DisplayName:        m.DisplayName,
		Description:        m.Description,
	}
}

// ClubConfigModelFromDomain creates a persistence model from a domain Config.
func ClubConfigModelFromDomain(cfg *club.Config) *ClubConfigModel {
	m := &ClubConfigModel{
		ClubID:             cfg.ClubID,
		PublicTransparency: cfg.PublicTransparency,
		DisplayName:        cfg.DisplayName,
		Description:        cfg.Description,
	}
	m.FromDomainBaseEntity(cfg.BaseEntity)
	return m
}
