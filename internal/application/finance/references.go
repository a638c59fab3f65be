package finance

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/finance"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	errMemberOtherClub   = shared.ForbiddenError("El miembro pertenece a otro club")
	errCampaignOtherClub = shared.ForbiddenError("La colecta pertenece a otro club")
)

// loadMember resolves a referenced member: NotFound when it does not exist,
// Forbidden when it belongs to another club.
func loadMember(ctx context.Context, repo finance.MemberRepository, clubID, memberID uuid.UUID) (*finance.Member, error) {
	m, err := repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.BelongsTo(clubID) {
		return nil, errMemberOtherClub
	}
	return m, nil
}

// loadOptionalMember is loadMember for nullable references
func loadOptionalMember(ctx context.Context, repo finance.MemberRepository, clubID uuid.UUID, memberID *uuid.UUID) (*finance.Member, error) {
	if memberID == nil || *memberID == uuid.Nil {
		return nil, nil
	}
	return loadMember(ctx, repo, clubID, *memberID)
}

// loadOptionalCampaign resolves a nullable campaign reference
func loadOptionalCampaign(ctx context.Context, repo finance.CampaignRepository, clubID uuid.UUID, campaignID *uuid.UUID) (*finance.Campaign, error) {
	if campaignID == nil || *campaignID == uuid.Nil {
		return nil, nil
	}
	c, err := repo.FindByID(ctx, *campaignID)
	if err != nil {
		return nil, err
	}
	if !c.BelongsTo(clubID) {
		return nil, errCampaignOtherClub
	}
	return c, nil
}

func normalizeFilter(page, pageSize int, search, orderBy, orderDir string) shared.Filter {
	f := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		OrderBy:  orderBy,
		OrderDir: orderDir,
	}
	f.Normalize()
	return f
}
