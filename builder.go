package accesscontrol

import (
	"fmt"
	"slices"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/scopes"
)

// The fluent declaration API mutates the policy store through a cursor held
// on the AccessControl itself: Grant and Deny position on a role, Resource
// on a resource, Action and Scope on the scopes they create, and Where,
// OnFields and WithConstraint refine those scopes. Misuse, such as Where
// before Action, is a programming error and panics.

// Grant positions the declaration cursor on the role, creating it if needed,
// and makes subsequent Action and Scope calls declare granting scopes.
func (a *AccessControl) Grant(role string) *AccessControl {
	return a.positionRole(role, EffectGrant)
}

// Deny positions the declaration cursor on the role, creating it if needed,
// and makes subsequent Action and Scope calls declare denying scopes.
func (a *AccessControl) Deny(role string) *AccessControl {
	return a.positionRole(role, EffectDeny)
}

func (a *AccessControl) positionRole(name string, effect Effect) *AccessControl {
	if a.store == nil {
		a.store = Store{}
	}
	node, ok := a.store[name]
	if !ok || node == nil {
		node = &Role{Resources: map[string]Actions{}}
		a.store[name] = node
	}
	if node.Resources == nil {
		node.Resources = map[string]Actions{}
	}
	a.curRole = node
	a.curEffect = effect
	a.curActions = nil
	a.curScopes = nil
	return a
}

// Inherits appends parent roles to the current role. Insertion is idempotent:
// a role never appears twice in its own inherits list.
func (a *AccessControl) Inherits(roles ...string) *AccessControl {
	if a.curRole == nil {
		panic("accesscontrol: Inherits requires a current role, call Grant or Deny first")
	}
	for _, role := range roles {
		if !slices.Contains(a.curRole.Inherits, role) {
			a.curRole.Inherits = append(a.curRole.Inherits, role)
		}
	}
	return a
}

// Resource positions the declaration cursor on a resource of the current
// role, creating it if needed.
func (a *AccessControl) Resource(name string) *AccessControl {
	if a.curRole == nil {
		panic("accesscontrol: Resource requires a current role, call Grant or Deny first")
	}
	actions, ok := a.curRole.Resources[name]
	if !ok || actions == nil {
		actions = Actions{}
		a.curRole.Resources[name] = actions
	}
	a.curActions = actions
	a.curScopes = nil
	return a
}

// scopeRef addresses one declared scope through its action map, so the
// cursor survives list reallocation by later declarations.
type scopeRef struct {
	actions Actions
	name    string
	index   int
}

// Action declares one scope per named action on the current resource, with
// the effect of the last Grant or Deny call and no condition. The cursor
// points at the created scopes, so a following Where, OnFields or
// WithConstraint call refines all of them.
func (a *AccessControl) Action(names ...string) *AccessControl {
	if a.curActions == nil {
		panic("accesscontrol: Action requires a current resource, call Resource first")
	}
	if len(names) == 0 {
		panic("accesscontrol: Action requires at least one action name")
	}
	a.curScopes = make([]scopeRef, 0, len(names))
	for _, name := range names {
		list := append(a.curActions[name], Scope{Effect: a.curEffect})
		a.curActions[name] = list
		a.curScopes = append(a.curScopes, scopeRef{actions: a.curActions, name: name, index: len(list) - 1})
	}
	return a
}

// Scope declares one scope from a "resource:action" path on the current role.
func (a *AccessControl) Scope(path string) *AccessControl {
	resource, action, field := scopes.Split(path)
	if resource == "" || action == "" {
		panic(fmt.Sprintf("accesscontrol: scope path %q must be resource:action", path))
	}
	if field != "" {
		panic(fmt.Sprintf("accesscontrol: scope path %q declares a field, use OnFields instead", path))
	}
	return a.Resource(resource).Action(action)
}

// Scopes declares one scope per "resource:action" path on the current role.
// The cursor points at all created scopes.
func (a *AccessControl) Scopes(paths ...string) *AccessControl {
	if len(paths) == 0 {
		panic("accesscontrol: Scopes requires at least one scope path")
	}
	created := make([]scopeRef, 0, len(paths))
	for _, path := range paths {
		a.Scope(path)
		created = append(created, a.curScopes...)
	}
	a.curScopes = created
	return a
}

// Where sets the condition gating the scopes under the cursor.
func (a *AccessControl) Where(cond Condition) *AccessControl {
	for _, sc := range a.scopeCursor("Where") {
		sc.Condition = cond
	}
	return a
}

// OnFields sets a fixed field visibility map on the scopes under the cursor,
// parsed from declarations like "*" or "!secret". Malformed declarations
// panic.
func (a *AccessControl) OnFields(names ...string) *AccessControl {
	cursor := a.scopeCursor("OnFields")
	gen := StaticFields(MustParseFields(names...))
	for _, sc := range cursor {
		sc.Fields = gen
	}
	return a
}

// OnDynamicFields sets a per-request field map generator on the scopes under
// the cursor.
func (a *AccessControl) OnDynamicFields(name string, fn FieldsFunc) *AccessControl {
	cursor := a.scopeCursor("OnDynamicFields")
	gen := DynamicFields(name, fn)
	for _, sc := range cursor {
		sc.Fields = gen
	}
	return a
}

// WithConstraint attaches a fixed constraint value to the scopes under the
// cursor.
func (a *AccessControl) WithConstraint(v any) *AccessControl {
	cursor := a.scopeCursor("WithConstraint")
	c := StaticConstraint(v)
	for _, sc := range cursor {
		sc.Constraint = c
	}
	return a
}

// WithConstraintGenerator attaches a per-request constraint generator to the
// scopes under the cursor.
func (a *AccessControl) WithConstraintGenerator(name string, fn ConstraintFunc) *AccessControl {
	cursor := a.scopeCursor("WithConstraintGenerator")
	c := DynamicConstraint(name, fn)
	for _, sc := range cursor {
		sc.Constraint = c
	}
	return a
}

func (a *AccessControl) scopeCursor(method string) []*Scope {
	if len(a.curScopes) == 0 {
		panic(fmt.Sprintf("accesscontrol: %s requires a current scope, call Action or Scope first", method))
	}
	out := make([]*Scope, len(a.curScopes))
	for i, ref := range a.curScopes {
		list := ref.actions[ref.name]
		out[i] = &list[ref.index]
	}
	return out
}
