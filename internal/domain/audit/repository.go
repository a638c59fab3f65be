package audit

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogFilter defines filtering options for audit browsing
type LogFilter struct {
	shared.Filter
	Action     string
	EntityType string
	UserID     *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// LogRepository persists audit records. There is no update or delete.
type LogRepository interface {
	// Create appends an audit record
	Create(ctx context.Context, log *Log) error

	// FindAllForClub lists audit records of a club, newest first
	FindAllForClub(ctx context.Context, clubID uuid.UUID, filter LogFilter) ([]Log, int64, error)
}
