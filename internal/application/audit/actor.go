package audit

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// Actor is who performed a request, as recorded in audit entries
type Actor struct {
	UserID    *uuid.UUID
	UserName  string
	IP        string
	UserAgent string
}

// WithActor returns a context carrying the acting user
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user, or the zero Actor when absent
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{}
}
