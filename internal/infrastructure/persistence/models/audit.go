package models

import (
	"time"

	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel is the persistence model for audit records.
type AuditLogModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ClubID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_club_created,priority:1"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index"`
	UserName   string         `gorm:"type:varchar(200)"`
	Action     string         `gorm:"type:varchar(30);not null;index"`
	EntityType string         `gorm:"type:varchar(30);not null;index"`
	EntityID   string         `gorm:"type:varchar(64)"`
	Details    datatypes.JSON
	IP         string         `gorm:"type:varchar(64)"`
	UserAgent  string         `gorm:"type:varchar(500)"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_audit_club_created,priority:2"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain audit Log.
func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:         m.ID,
		ClubID:     m.ClubID,
		UserID:     m.UserID,
		UserName:   m.UserName,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    []byte(m.Details),
		IP:         m.IP,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.CreatedAt,
	}
}

// AuditLogModelFromDomain creates a persistence model from a domain audit Log.
func AuditLogModelFromDomain(l *audit.Log) *AuditLogModel {
	var details datatypes.JSON
	if len(l.Details) > 0 {
		details = datatypes.JSON(l.Details)
	}
	return &AuditLogModel{
		ID:         l.ID,
		ClubID:     l.ClubID,
		UserID:     l.UserID,
		UserName:   l.UserName,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    details,
		IP:         l.IP,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}
