package models

import (
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null"`
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ClubAggregateModel provides the persistence fields of club-owned aggregates.
type ClubAggregateModel struct {
	AggregateModel
	ClubID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomainClubAggregateRoot converts ClubAggregateModel to domain ClubAggregateRoot
func (m *ClubAggregateModel) ToDomainClubAggregateRoot() shared.ClubAggregateRoot {
	return shared.ClubAggregateRoot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClubID:            m.ClubID,
	}
}

// FromDomainClubAggregateRoot populates ClubAggregateModel from domain ClubAggregateRoot
func (m *ClubAggregateModel) FromDomainClubAggregateRoot(c shared.ClubAggregateRoot) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClubID = c.ClubID
}

// All returns every model, in dependency order, for GORM AutoMigrate
func All() []any {
	return []any{
		&ClubModel{},
		&ClubConfigModel{},
		&UserModel{},
		&MemberModel{},
		&CampaignModel{},
		&ContributionModel{},
		&ExpenseModel{},
		&IncomeModel{},
		&DebtModel{},
		&PaymentModel{},
		&AuditLogModel{},
	}
}
