// Package tenant resolves which club a request acts on.
package tenant

import (
	"context"
	"errors"

	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// ErrNoClub is returned for tokens that are not scoped to any club
var ErrNoClub = shared.NewDomainError("UNAUTHORIZED", "La sesión no tiene un club asociado")

// Resolver derives the acting club from token claims or a public slug
type Resolver struct {
	clubs club.ClubRepository
}

// NewResolver creates a new tenant resolver
func NewResolver(clubs club.ClubRepository) *Resolver {
	return &Resolver{clubs: clubs}
}

// ResolveFromClaims returns the club of an authenticated session.
// Club users always act in their own club and requestedClubID is ignored.
// Super-admins carry no club; they act in the club named by requestedClubID
// (the X-Club-ID header) and get ErrNoClub without it.
func ResolveFromClaims(claims *auth.Claims, requestedClubID string) (uuid.UUID, error) {
	if claims == nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	if clubID, ok := claims.GetClubUUID(); ok {
		return clubID, nil
	}
	if claims.SuperAdmin && requestedClubID != "" {
		clubID, err := uuid.Parse(requestedClubID)
		if err != nil {
			return uuid.Nil, shared.InvalidInputError("X-Club-ID no es un UUID válido")
		}
		return clubID, nil
	}
	return uuid.Nil, ErrNoClub
}

// ResolveClaims is ResolveFromClaims followed by a check that the club
// still exists and is active.
func (r *Resolver) ResolveClaims(ctx context.Context, claims *auth.Claims, requestedClubID string) (uuid.UUID, error) {
	clubID, err := ResolveFromClaims(claims, requestedClubID)
	if err != nil {
		return uuid.Nil, err
	}
	c, err := r.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.ForbiddenError("Club inexistente o inactivo")
		}
		return uuid.Nil, err
	}
	if !c.Active {
		return uuid.Nil, shared.ForbiddenError("Club inexistente o inactivo")
	}
	return clubID, nil
}

// ResolveSlug returns the active club published under slug
func (r *Resolver) ResolveSlug(ctx context.Context, slug string) (*club.Club, error) {
	if club.ValidateSlug(slug) != nil {
		return nil, shared.NotFoundError("Club no encontrado")
	}
	c, err := r.clubs.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Club no encontrado")
		}
		return nil, err
	}
	if !c.Active {
		return nil, shared.NotFoundError("Club no encontrado")
	}
	return c, nil
}
