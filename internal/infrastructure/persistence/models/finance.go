package models

import (
	"time"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemberModel is the persistence model for the Member aggregate root.
type MemberModel struct {
	ClubAggregateModel
	Name     string               `gorm:"type:varchar(200);not null"`
	Email    string               `gorm:"type:varchar(200)"`
	Phone    string               `gorm:"type:varchar(50)"`
	Status   finance.MemberStatus `gorm:"type:varchar(20);not null;index"`
	DuesDebt decimal.Decimal      `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *MemberModel) ToDomain() *finance.Member {
	return &finance.Member{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Status:            m.Status,
		DuesDebt:          m.DuesDebt,
	}
}

// MemberModelFromDomain creates a persistence model from a domain Member entity.
func MemberModelFromDomain(member *finance.Member) *MemberModel {
	m := &MemberModel{
		Name:     member.Name,
		Email:    member.Email,
		Phone:    member.Phone,
		Status:   member.Status,
		DuesDebt: member.DuesDebt,
	}
	m.FromDomainClubAggregateRoot(member.ClubAggregateRoot)
	return m
}

// CampaignModel is the persistence model for the Campaign aggregate root.
type CampaignModel struct {
	ClubAggregateModel
	Name        string                 `gorm:"type:varchar(200);not null"`
	Description string                 `gorm:"type:text"`
	Goal        decimal.Decimal        `gorm:"type:decimal(14,2);not null"`
	Status      finance.CampaignStatus `gorm:"type:varchar(20);not null;index"`
	CloseDate   *time.Time
}

// TableName returns the table name for GORM
func (CampaignModel) TableName() string {
	return "campaigns"
}

// ToDomain converts the persistence model to a domain Campaign entity.
func (m *CampaignModel) ToDomain() *finance.Campaign {
	return &finance.Campaign{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Goal:              m.Goal,
		Status:            m.Status,
		CloseDate:         m.CloseDate,
	}
}

// CampaignModelFromDomain creates a persistence model from a domain Campaign entity.
func CampaignModelFromDomain(c *finance.Campaign) *CampaignModel {
	m := &CampaignModel{
		Name:        c.Name,
		Description: c.Description,
		Goal:        c.Goal,
		Status:      c.Status,
		CloseDate:   c.CloseDate,
	}
	m.FromDomainClubAggregateRoot(c.ClubAggregateRoot)
	return m
}

// ContributionModel is the persistence model for the Contribution aggregate root.
type ContributionModel struct {
	ClubAggregateModel
	MemberID      *uuid.UUID                 `gorm:"type:uuid;index"`
	MemberName    string                     `gorm:"type:varchar(200)"`
	CampaignID    *uuid.UUID                 `gorm:"type:uuid;index"`
	Amount        decimal.Decimal            `gorm:"type:decimal(14,2);not null"`
	Status        finance.ContributionStatus `gorm:"type:varchar(20);not null"`
	PaymentMethod string                     `gorm:"type:varchar(50)"`
	Notes         string                     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContributionModel) TableName() string {
	return "contributions"
}

// ToDomain converts the persistence model to a domain Contribution entity.
func (m *ContributionModel) ToDomain() *finance.Contribution {
	return &finance.Contribution{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		MemberID:          m.MemberID,
		MemberName:        m.MemberName,
		CampaignID:        m.CampaignID,
		Amount:            m.Amount,
		Status:            m.Status,
		PaymentMethod:     m.PaymentMethod,
		Notes:             m.Notes,
	}
}

// ContributionModelFromDomain creates a persistence model from a domain Contribution entity.
func ContributionModelFromDomain(c *finance.Contribution) *ContributionModel {
	m := &ContributionModel{
		MemberID:      c.MemberID,
		MemberName:    c.MemberName,
		CampaignID:    c.CampaignID,
		Amount:        c.Amount,
		Status:        c.Status,
		PaymentMethod: c.PaymentMethod,
		Notes:         c.Notes,
	}
	m.FromDomainClubAggregateRoot(c.ClubAggregateRoot)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	ClubAggregateModel
	PaidByID    *uuid.UUID      `gorm:"type:uuid;index"`
	PaidByName  string          `gorm:"type:varchar(200)"`
	CampaignID  *uuid.UUID      `gorm:"type:uuid;index"`
	Concept     string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	ExpenseType string          `gorm:"type:varchar(50)"`
	ReceiptURL  string          `gorm:"type:varchar(500)"`
	Notes       string          `gorm:"type:text"`
	Date        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		PaidByID:          m.PaidByID,
		PaidByName:        m.PaidByName,
		CampaignID:        m.CampaignID,
		Concept:           m.Concept,
		Amount:            m.Amount,
		Category:          m.Category,
		ExpenseType:       m.ExpenseType,
		ReceiptURL:        m.ReceiptURL,
		Notes:             m.Notes,
		Date:              m.Date,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		PaidByID:    e.PaidByID,
		PaidByName:  e.PaidByName,
		CampaignID:  e.CampaignID,
		Concept:     e.Concept,
		Amount:      e.Amount,
		Category:    e.Category,
		ExpenseType: e.ExpenseType,
		ReceiptURL:  e.ReceiptURL,
		Notes:       e.Notes,
		Date:        e.Date,
	}
	m.FromDomainClubAggregateRoot(e.ClubAggregateRoot)
	return m
}

// IncomeModel is the persistence model for the Income aggregate root.
type IncomeModel struct {
	ClubAggregateModel
	MemberID   *uuid.UUID      `gorm:"type:uuid;index"`
	MemberName string          `gorm:"type:varchar(200)"`
	Concept    string          `gorm:"type:varchar(300);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Source     string          `gorm:"type:varchar(50);not null;index"`
	Date       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToDomain converts the persistence model to a domain Income entity.
func (m *IncomeModel) ToDomain() *finance.Income {
	return &finance.Income{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		MemberID:          m.MemberID,
		MemberName:        m.MemberName,
		Concept:           m.Concept,
		Amount:            m.Amount,
		Source:            m.Source,
		Date:              m.Date,
	}
}

// IncomeModelFromDomain creates a persistence model from a domain Income entity.
func IncomeModelFromDomain(i *finance.Income) *IncomeModel {
	m := &IncomeModel{
		MemberID:   i.MemberID,
		MemberName: i.MemberName,
		Concept:    i.Concept,
		Amount:     i.Amount,
		Source:     i.Source,
		Date:       i.Date,
	}
	m.FromDomainClubAggregateRoot(i.ClubAggregateRoot)
	return m
}

// DebtModel is the persistence model for the Debt aggregate root.
type DebtModel struct {
	ClubAggregateModel
	MemberID        *uuid.UUID         `gorm:"type:uuid;index"`
	MemberName      string             `gorm:"type:varchar(200)"`
	Concept         string             `gorm:"type:varchar(300);not null"`
	OriginalAmount  decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	PaidAmount      decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	RemainingAmount decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	Status          finance.DebtStatus `gorm:"type:varchar(20);not null;index"`
	Notes           string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt entity.
func (m *DebtModel) ToDomain() *finance.Debt {
	return &finance.Debt{
		ClubAggregateRoot: m.ToDomainClubAggregateRoot(),
		MemberID:          m.MemberID,
		MemberName:        m.MemberName,
		Concept:           m.Concept,
		OriginalAmount:    m.OriginalAmount,
		PaidAmount:        m.PaidAmount,
		RemainingAmount:   m.RemainingAmount,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// DebtModelFromDomain creates a persistence model from a domain Debt entity.
func DebtModelFromDomain(d *finance.Debt) *DebtModel {
	m := &DebtModel{
		MemberID:        d.MemberID,
		MemberName:      d.MemberName,
		Concept:         d.Concept,
		OriginalAmount:  d.OriginalAmount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status,
		Notes:           d.Notes,
	}
	m.FromDomainClubAggregateRoot(d.ClubAggregateRoot)
	return m
}

// PaymentModel is the persistence model for an immutable debt payment.
type PaymentModel struct {
	BaseModel
	ClubID uuid.UUID       `gorm:"type:uuid;not null;index"`
	DebtID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Notes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "debt_payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ClubID:     m.ClubID,
		DebtID:     m.DebtID,
		Amount:     m.Amount,
		Notes:      m.Notes,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		ClubID: p.ClubID,
		DebtID: p.DebtID,
		Amount: p.Amount,
		Notes:  p.Notes,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
