package audit

import (
	"context"
	"encoding/json"

	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry describes one administrative mutation. Details is any value that
// encodes to JSON; the acting user, ip and user agent come from the context.
type Entry struct {
	ClubID     uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	Details    any
}

// Recorder writes audit entries without ever failing the caller
type Recorder struct {
	repo   audit.LogRepository
	logger *zap.Logger
}

// NewRecorder creates a new audit recorder
func NewRecorder(repo audit.LogRepository, zapLogger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: zapLogger}
}

// Record persists one audit entry. Encoding and storage errors are logged
// at Warn and swallowed so the primary mutation always succeeds.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	log := audit.NewLog(e.ClubID, e.Action, e.EntityType, e.EntityID)

	actor := ActorFromContext(ctx)
	log.UserID = actor.UserID
	log.UserName = actor.UserName
	log.IP = actor.IP
	log.UserAgent = actor.UserAgent

	l := logger.L(ctx, r.logger)
	fields := []zap.Field{
		zap.String("action", e.Action),
		zap.String("entity_type", e.EntityType),
		zap.String("entity_id", e.EntityID),
	}
	if logger.GetClubID(ctx) == "" {
		fields = append(fields, zap.String("club_id", e.ClubID.String()))
	}

	if e.Details != nil {
		details, err := json.Marshal(e.Details)
		if err != nil {
			l.Warn("Failed to encode audit details", append(fields, zap.Error(err))...)
			return
		}
		log.Details = details
	}

	if err := r.repo.Create(ctx, log); err != nil {
		l.Warn("Failed to write audit log", append(fields, zap.Error(err))...)
	}
}
