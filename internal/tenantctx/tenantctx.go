package tenantctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Actor identifies who is acting and for which tenant. Every engine call
// receives it through the request context; there is no ambient session state.
type Actor struct {
	TenantID snowflake.ID
	UserID   snowflake.ID
	Role     string
}

// ActorContextKey is the request context key for the active actor.
type ActorContextKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(ActorContextKey{}).(Actor)
	if !ok || actor.TenantID == 0 {
		return Actor{}, false
	}
	return actor, true
}

// TenantIDFromContext returns the tenant ID from context, if set.
func TenantIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return 0, false
	}
	return actor.TenantID, true
}

// ParseID parses a snowflake ID from its string form.
func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
