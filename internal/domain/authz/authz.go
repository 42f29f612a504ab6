// Package authz holds the caller identity passed into every domain operation
// and the two checks that gate state changes: role and ownership.
package authz

import (
	"context"

	"care-app-go/internal/domain/apperr"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Actor is the resolved profile of the caller.
type Actor struct {
	ID         string
	ExternalID string
	Email      string
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

var (
	ErrUnauthenticated = apperr.Unauthenticated("unauthenticated", "authentication required")
	ErrAdminRequired   = apperr.PermissionDenied("admin_required", "admin role required")
	ErrNotOwner        = apperr.PermissionDenied("forbidden", "not allowed to access this resource")
)

func CheckAdmin(actor Actor) Decision {
	if actor.ID == "" {
		return deny("no actor")
	}
	if !actor.IsAdmin() {
		return deny("admin role required")
	}
	return allow()
}

func CheckOwner(actor Actor, ownerID string) Decision {
	if actor.ID == "" {
		return deny("no actor")
	}
	if ownerID == "" || actor.ID != ownerID {
		return deny("caller does not own the resource")
	}
	return allow()
}

func CheckOwnerOrAdmin(actor Actor, ownerID string) Decision {
	if actor.IsAdmin() && actor.ID != "" {
		return allow()
	}
	return CheckOwner(actor, ownerID)
}

func RequireAdmin(actor Actor) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	if !CheckAdmin(actor).Allowed {
		return ErrAdminRequired
	}
	return nil
}

func RequireOwner(actor Actor, ownerID string) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	if !CheckOwner(actor, ownerID).Allowed {
		return ErrNotOwner
	}
	return nil
}

func RequireOwnerOrAdmin(actor Actor, ownerID string) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	if !CheckOwnerOrAdmin(actor, ownerID).Allowed {
		return ErrNotOwner
	}
	return nil
}

func RequireAuthenticated(actor Actor) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	return nil
}

type contextKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	if !ok || actor.ID == "" {
		return Actor{}, false
	}
	return actor, true
}
