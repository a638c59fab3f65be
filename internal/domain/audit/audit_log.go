package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action tags recorded in the audit log
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionPayment    = "payment"
	ActionLogin      = "login"
	ActionRoleChange = "role_change"
	ActionDeactivate = "deactivate"
	ActionActivate   = "activate"
	ActionConfigure  = "configure"
)

// Entity types recorded in the audit log
const (
	EntityClub         = "club"
	EntityConfig       = "configuracion"
	EntityUser         = "usuario"
	EntityMember       = "miembro"
	EntityCampaign     = "colecta"
	EntityContribution = "aporte"
	EntityExpense      = "gasto"
	EntityIncome       = "ingreso"
	EntityDebt         = "deuda"
	EntityPayment      = "pago_deuda"
)

// Log is one append-only audit record. Details holds JSON text.
type Log struct {
	ID         uuid.UUID
	ClubID     uuid.UUID
	UserID     *uuid.UUID
	UserName   string
	Action     string
	EntityType string
	EntityID   string
	Details    []byte
	IP         string
	UserAgent  string
	CreatedAt  time.Time
}

// NewLog creates an audit record stamped now
func NewLog(clubID uuid.UUID, action, entityType, entityID string) *Log {
	return &Log{
		ID:         uuid.New(),
		ClubID:     clubID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
}
