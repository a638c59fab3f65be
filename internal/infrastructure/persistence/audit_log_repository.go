package persistence

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/models"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.LogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create appends an audit record
func (r *GormAuditLogRepository) Create(ctx context.Context, log *audit.Log) error {
	return r.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(log)).Error
}

// FindAllForClub lists the audit records of a club, newest first by default
func (r *GormAuditLogRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter audit.LogFilter) ([]audit.Log, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Scopes(tenant.ClubScope(clubID))
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditLogModel
	if err := paginate(query, filter.Filter, AuditSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]audit.Log, len(rows))
	for i := range rows {
		logs[i] = *rows[i].ToDomain()
	}
	return logs, total, nil
}
