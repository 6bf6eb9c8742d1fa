package middleware

import (
	"context"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
)

type permissionCtxKey struct{}

// ContextWithPermission stores a granted permission in the context. Require
// does this for every authorized request.
func ContextWithPermission(ctx context.Context, perm *accesscontrol.Permission) context.Context {
	return context.WithValue(ctx, permissionCtxKey{}, perm)
}

// PermissionFromContext returns the permission stored by Require, giving
// handlers access to the decision's field mask and constraint.
func PermissionFromContext(ctx context.Context) (*accesscontrol.Permission, bool) {
	perm, ok := ctx.Value(permissionCtxKey{}).(*accesscontrol.Permission)
	return perm, ok
}
