package accesscontrol

import (
	"context"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/scopes"
)

// AccessControl evaluates access queries against a policy store and carries
// the cursor state of the fluent declaration API. Declaration is not
// synchronized: build the policy first, then query it, possibly from many
// goroutines at once. The store is never mutated during evaluation.
type AccessControl struct {
	store Store

	// Declaration cursor, valid only while building.
	curRole    *Role
	curEffect  Effect
	curActions Actions
	curScopes  []scopeRef
}

// New returns an empty AccessControl ready for fluent declaration.
func New() *AccessControl {
	return &AccessControl{store: Store{}}
}

// NewFromStore returns an AccessControl evaluating the given store. The store
// is adopted, not copied; callers must not mutate it while queries run.
func NewFromStore(store Store) *AccessControl {
	if store == nil {
		store = Store{}
	}
	return &AccessControl{store: store}
}

// NewFromSource loads a policy store from the source and validates its
// inheritance graph before adopting it.
func NewFromSource(ctx context.Context, source Source) (*AccessControl, error) {
	if source == nil {
		panic("accesscontrol: source cannot be nil")
	}
	store, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = Store{}
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	return &AccessControl{store: store}, nil
}

// Store returns the underlying policy store. Treat it as read-only while
// queries run.
func (a *AccessControl) Store() Store {
	return a.store
}

// Can checks whether the role may perform the scope, "resource:action" or
// "resource:action:field", under the given request context. The returned
// Permission is never nil on a nil error; a denied outcome is a result, not
// an error. Errors are reserved for field/constraint generator failures and
// inheritance cycles.
func (a *AccessControl) Can(ctx context.Context, role, scope string, rc Context) (*Permission, error) {
	return a.CanAny(ctx, []string{role}, scope, rc)
}

// CanAny checks the roles in order against one shared Permission, stopping at
// the first grant. Denial records accumulated across every role tried are
// preserved on the result, including those recorded before a later grant.
func (a *AccessControl) CanAny(ctx context.Context, roles []string, scope string, rc Context) (*Permission, error) {
	resource, action, field := scopes.Split(scope)
	perm := NewPermission()
	for _, role := range roles {
		granted, err := a.canRole(ctx, role, resource, action, field, rc, perm, nil)
		if err != nil {
			return nil, err
		}
		if granted {
			break
		}
	}
	return perm, nil
}
