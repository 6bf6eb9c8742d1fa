package accesscontrol

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard matches any role, resource, or action name. It is consulted only
// when the exact name is entirely absent from the corresponding map.
const Wildcard = "*"

// Effect is the outcome a scope produces when its condition and field test
// succeed.
type Effect string

const (
	// EffectGrant marks a scope that grants access when it matches.
	EffectGrant Effect = "grant"

	// EffectDeny marks a scope that denies access when it matches. A matched
	// deny short-circuits the whole action, including grants declared on
	// inherited roles.
	EffectDeny Effect = "deny"
)

// Context carries request attributes consulted by conditions, constraint
// generators, and field generators. A nil Context is valid.
type Context map[string]any

// Store maps role names to their definitions. The wildcard role applies to
// any role name not registered explicitly. The engine treats a Store as
// read-only during evaluation; callers must not mutate it while queries run.
type Store map[string]*Role

// Role defines the permissions of one role and the roles it inherits from.
// Inherited roles are consulted in declaration order when the role itself
// produces no terminating decision.
type Role struct {
	Resources map[string]Actions
	Inherits  []string
}

// Actions maps action names to their scope declarations. Scopes for the same
// action are evaluated in declaration order, first terminating match wins.
type Actions map[string][]Scope

// Scope is the unit of policy: one effect gated by a condition, with an
// optional constraint and field visibility map attached to a grant.
type Scope struct {
	Condition  Condition
	Effect     Effect
	Constraint Constraint
	Fields     FieldGenerator
}

// Clone returns a deep copy of the store. Condition and generator functions
// are shared between the copies.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for name, role := range s {
		if role == nil {
			out[name] = nil
			continue
		}
		resources := make(map[string]Actions, len(role.Resources))
		for resName, actions := range role.Resources {
			actionsCopy := make(Actions, len(actions))
			for actName, scopes := range actions {
				scopesCopy := make([]Scope, len(scopes))
				copy(scopesCopy, scopes)
				actionsCopy[actName] = scopesCopy
			}
			resources[resName] = actionsCopy
		}
		inherits := make([]string, len(role.Inherits))
		copy(inherits, role.Inherits)
		out[name] = &Role{Resources: resources, Inherits: inherits}
	}
	return out
}

// Validate checks role inheritance for cycles. Can detects cycles at query
// time as well; Validate lets policy sources fail at load instead.
func (s Store) Validate() error {
	for name := range s {
		if err := s.checkInheritance(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// checkInheritance walks the inheritance graph depth-first, failing when a
// role reappears on its own path.
func (s Store) checkInheritance(name string, path []string) error {
	for _, seen := range path {
		if seen == name {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance cycle: %s", strings.Join(append(path, name), " -> ")))
		}
	}
	role, ok := s[name]
	if !ok || role == nil {
		return nil
	}
	path = append(path, name)
	for _, parent := range role.Inherits {
		if err := s.checkInheritance(parent, path); err != nil {
			return err
		}
	}
	return nil
}
