package accesscontrol

import "context"

// rolesCtxKey is the context key for storing the requester's roles.
type rolesCtxKey struct{}

// WithRoles stores the requester's roles in the context, in evaluation order.
func WithRoles(ctx context.Context, roles ...string) context.Context {
	return context.WithValue(ctx, rolesCtxKey{}, roles)
}

// RolesFromContext retrieves the requester's roles from the context.
func RolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(rolesCtxKey{}).([]string)
	return roles, ok
}
