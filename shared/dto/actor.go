package dto

import (
	"clinic/shared/constant"
	"context"
)

// Actor identifies who performed a write. Services stamp it on metadata and
// on the activity log.
type Actor struct {
	ID   string
	Name string
	Role string
}

// ActorFromContext reads the actor placed on the context by the auth middleware.
// Requests without one are attributed to the guest actor.
func ActorFromContext(ctx context.Context) Actor {
	actor := Actor{ID: constant.ContextGuest, Name: constant.ContextGuest}

	if id, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && id != "" {
		actor.ID = id
	}

	if name, ok := ctx.Value(constant.ContextKeyUsername).(string); ok && name != "" {
		actor.Name = name
	}

	if role, ok := ctx.Value(constant.ContextKeyUserRole).(string); ok {
		actor.Role = role
	}

	return actor
}

// SystemActor is used for writes not triggered by an operator.
func SystemActor() Actor {
	return Actor{ID: constant.ContextSystem, Name: constant.ContextSystem}
}
