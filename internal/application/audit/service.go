package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogResponse is one audit record in API responses
type LogResponse struct {
	ID         uuid.UUID       `json:"id"`
	UserID     *uuid.UUID      `json:"usuarioId,omitempty"`
	UserName   string          `json:"usuarioNombre,omitempty"`
	Action     string          `json:"accion"`
	EntityType string          `json:"entidad"`
	EntityID   string          `json:"entidadId,omitempty"`
	Details    json.RawMessage `json:"detalles,omitempty"`
	IP         string          `json:"ip,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListFilter is the query string of the audit browser
type ListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
	Action     string     `form:"accion"`
	EntityType string     `form:"entidad"`
	UserID     *uuid.UUID `form:"usuarioId"`
	From       *time.Time `form:"desde" time_format:"2006-01-02"`
	To         *time.Time `form:"hasta" time_format:"2006-01-02"`
}

// Service lists the audit trail of a club
type Service struct {
	repo audit.LogRepository
}

// NewService creates a new audit browsing service
func NewService(repo audit.LogRepository) *Service {
	return &Service{repo: repo}
}

// List returns a page of audit records, newest first
func (s *Service) List(ctx context.Context, clubID uuid.UUID, f ListFilter) (shared.Paginated[LogResponse], error) {
	filter := audit.LogFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
		},
		Action:     f.Action,
		EntityType: f.EntityType,
		UserID:     f.UserID,
		From:       f.From,
	}
	if f.To != nil {
		// inclusive end of day
		end := f.To.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	filter.Normalize()

	logs, total, err := s.repo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[LogResponse]{}, err
	}

	items := make([]LogResponse, len(logs))
	for i := range logs {
		items[i] = toLogResponse(&logs[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

func toLogResponse(l *audit.Log) LogResponse {
	resp := LogResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		UserName:   l.UserName,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		IP:         l.IP,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
	if len(l.Details) > 0 && json.Valid(l.Details) {
		resp.Details = json.RawMessage(l.Details)
	}
	return resp
}
