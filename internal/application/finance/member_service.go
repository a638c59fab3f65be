package finance

import (
	"context"
	"time"

	"github.com/clubfinanzas/backend/internal/application/audit"
	domainaudit "github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MemberService manages the members of a club
type MemberService struct {
	memberRepo finance.MemberRepository
	audit      *audit.Recorder
	logger     *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo finance.MemberRepository, recorder *audit.Recorder, logger *zap.Logger) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		audit:      recorder,
		logger:     logger,
	}
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	ID        uuid.UUID       `json:"id"`
	ClubID    uuid.UUID       `json:"clubId"`
	Name      string          `json:"nombre"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"telefono,omitempty"`
	Status    string          `json:"estado"`
	DuesDebt  decimal.Decimal `json:"deudaCuota"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MemberRequest is the body of member create and update
type MemberRequest struct {
	Name     string          `json:"nombre" binding:"required,max=200"`
	Email    string          `json:"email" binding:"omitempty,email,max=200"`
	Phone    string          `json:"telefono" binding:"max=50"`
	Status   string          `json:"estado" binding:"omitempty,oneof=activo inactivo"`
	DuesDebt decimal.Decimal `json:"deudaCuota" binding:"gte=0"`
}

// MemberListFilter is the query string of the member list
type MemberListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"estado" binding:"omitempty,oneof=activo inactivo"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// List returns a page of members
func (s *MemberService) List(ctx context.Context, clubID uuid.UUID, f MemberListFilter) (shared.Paginated[MemberResponse], error) {
	orderBy, orderDir := f.OrderBy, f.OrderDir
	if orderBy == "" {
		orderBy, orderDir = "name", "asc"
	}
	filter := finance.MemberFilter{Filter: normalizeFilter(f.Page, f.PageSize, f.Search, orderBy, orderDir)}
	if f.Status != "" {
		status := finance.MemberStatus(f.Status)
		filter.Status = &status
	}

	members, total, err := s.memberRepo.FindAllForClub(ctx, clubID, filter)
	if err != nil {
		return shared.Paginated[MemberResponse]{}, err
	}
	items := make([]MemberResponse, len(members))
	for i := range members {
		items[i] = toMemberResponse(&members[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one member
func (s *MemberService) Get(ctx context.Context, clubID, id uuid.UUID) (*MemberResponse, error) {
	m, err := s.memberRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(m)
	return &resp, nil
}

// Create adds a member to the club
func (s *MemberService) Create(ctx context.Context, clubID uuid.UUID, req MemberRequest) (*MemberResponse, error) {
	m, err := finance.NewMember(clubID, req.Name, req.Email, req.Phone, req.DuesDebt)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := m.Update(req.Name, req.Email, req.Phone, req.DuesDebt, finance.MemberStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if err := s.memberRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionCreate,
		EntityType: domainaudit.EntityMember,
		EntityID:   m.ID.String(),
		Details:    map[string]any{"nombre": m.Name},
	})

	resp := toMemberResponse(m)
	return &resp, nil
}

// Update replaces a member's details
func (s *MemberService) Update(ctx context.Context, clubID, id uuid.UUID, req MemberRequest) (*MemberResponse, error) {
	m, err := s.memberRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if err := m.Update(req.Name, req.Email, req.Phone, req.DuesDebt, finance.MemberStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionUpdate,
		EntityType: domainaudit.EntityMember,
		EntityID:   m.ID.String(),
		Details:    map[string]any{"nombre": m.Name, "estado": m.Status},
	})

	resp := toMemberResponse(m)
	return &resp, nil
}

// Delete removes a member. Records that referenced it keep their name
// snapshot and lose the link.
func (s *MemberService) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	m, err := s.memberRepo.FindByIDForClub(ctx, clubID, id)
	if err != nil {
		return err
	}
	if err := s.memberRepo.DeleteForClub(ctx, clubID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ClubID:     clubID,
		Action:     domainaudit.ActionDelete,
		EntityType: domainaudit.EntityMember,
		EntityID:   id.String(),
		Details:    map[string]any{"nombre": m.Name},
	})
	s.logger.Info("Member deleted",
		zap.String("club_id", clubID.String()),
		zap.String("member_id", id.String()))
	return nil
}

func toMemberResponse(m *finance.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		ClubID:    m.ClubID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    m.Status.String(),
		DuesDebt:  m.DuesDebt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
