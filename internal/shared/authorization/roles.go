// Package authorization defines programme staff roles and the acting user carried in a request context.
package authorization

import (
	"context"

	"github.com/reliefops/cva/internal/shared/constants"
)

type UserRole string

const (
	RoleAdmin            UserRole = "admin"
	RoleProgrammeManager UserRole = "programme_manager"
	RoleFieldStaff       UserRole = "field_staff"
	RoleViewer           UserRole = "viewer"
)

var validRoles = map[UserRole]bool{
	RoleAdmin:            true,
	RoleProgrammeManager: true,
	RoleFieldStaff:       true,
	RoleViewer:           true,
}

// AllRoles lists roles from most to least privileged.
func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleProgrammeManager, RoleFieldStaff, RoleViewer}
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// ParseUserRole falls back to the least privileged role for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleViewer
}

// Actor identifies who performs a change. It is written to audit entries.
type Actor struct {
	ID   string
	Role UserRole
}

type actorKey struct{}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user, or the system actor when none is set.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok && actor.ID != "" {
		return actor
	}
	return Actor{ID: constants.SystemActor, Role: RoleAdmin}
}
