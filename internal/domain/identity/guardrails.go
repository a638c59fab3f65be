package identity

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrLastAdmin is returned when a change would leave a club with no active admin
var ErrLastAdmin = shared.NewDomainError("LAST_ADMIN", "El club debe conservar al menos un administrador activo")

// Guardrails keeps every club with at least one active admin-role user.
// Each check loads the target, verifies it belongs to the caller's club and
// returns the loaded user so callers can apply the change.
type Guardrails struct {
	users UserRepository
}

// NewGuardrails creates the admin guardrails
func NewGuardrails(users UserRepository) *Guardrails {
	return &Guardrails{users: users}
}

// CanDeleteUser rejects deleting the last active admin of the club
func (g *Guardrails) CanDeleteUser(ctx context.Context, targetID, clubID uuid.UUID) (*User, error) {
	target, err := g.loadTarget(ctx, targetID, clubID)
	if err != nil {
		return nil, err
	}
	if target.IsActiveAdmin() {
		if err := g.requireAnotherAdmin(ctx, target, clubID); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// CanChangeRole rejects demoting the last active admin of the club
func (g *Guardrails) CanChangeRole(ctx context.Context, targetID, clubID uuid.UUID, newRole Role) (*User, error) {
	if !newRole.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "El rol debe ser admin o tesorero")
	}
	target, err := g.loadTarget(ctx, targetID, clubID)
	if err != nil {
		return nil, err
	}
	if target.IsActiveAdmin() && newRole != RoleAdmin {
		if err := g.requireAnotherAdmin(ctx, target, clubID); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// CanDeactivateUser rejects deactivating an inactive user or the last active admin
func (g *Guardrails) CanDeactivateUser(ctx context.Context, targetID, clubID uuid.UUID) (*User, error) {
	target, err := g.loadTarget(ctx, targetID, clubID)
	if err != nil {
		return nil, err
	}
	if !target.Active {
		return nil, shared.NewDomainError("ALREADY_INACTIVE", "El usuario ya está inactivo")
	}
	if target.Role == RoleAdmin {
		if err := g.requireAnotherAdmin(ctx, target, clubID); err != nil {
			return nil, err
		}
	}
	return target, nil
}

func (g *Guardrails) loadTarget(ctx context.Context, targetID, clubID uuid.UUID) (*User, error) {
	target, err := g.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.BelongsTo(clubID) {
		return nil, shared.ForbiddenError("El usuario no pertenece a este club")
	}
	return target, nil
}

func (g *Guardrails) requireAnotherAdmin(ctx context.Context, target *User, clubID uuid.UUID) error {
	others, err := g.users.CountActiveAdmins(ctx, clubID, target.ID)
	if err != nil {
		return err
	}
	if others == 0 {
		return ErrLastAdmin
	}
	return nil
}
