package accesscontrol

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// evalScope tests one scope declaration against the request. It returns
// whether the scope granted access and whether evaluation of the current
// action's scope list must stop. The prefix identifies
// role:resource:action:scopeIndex for decision paths.
func evalScope(ctx context.Context, sc Scope, field string, rc Context, perm *Permission, prefix string) (granted, terminate bool, err error) {
	fields, err := sc.Fields.resolve(ctx, rc)
	if err != nil {
		return false, false, err
	}

	matchedField := ""
	fieldTest := true
	if field != "" {
		matchedField, fieldTest = fields.Test(field)
	}

	// The condition runs only when the field test held; its name appears in
	// the decision path only in that case.
	condTest := false
	condName := ""
	if fieldTest {
		condTest = sc.Condition.test(ctx, rc)
		condName = sc.Condition.name()
	}

	path := fmt.Sprintf("%s:%s:%s:%s", sc.Effect, prefix, matchedField, condName)

	if sc.Effect == EffectDeny {
		if fieldTest && condTest {
			perm.Deny(path)
			return false, true, nil
		}
		// A deny whose test failed is skipped, it does not block later scopes.
		return false, false, nil
	}

	if fieldTest && condTest {
		if sc.Constraint.isZero() {
			perm.Grant(path, fields)
		} else {
			value, err := sc.Constraint.resolve(ctx, rc)
			if err != nil {
				return false, false, err
			}
			perm.GrantWithConstraint(path, fields, value)
		}
		return true, true, nil
	}

	perm.Deny(path)
	return false, false, nil
}

// canRole resolves one role node against the requested resource, action and
// field, recursing into inherited roles when the node itself produces no
// terminating decision. chain carries the roles on the current inheritance
// path; meeting one of them again fails the query.
func (a *AccessControl) canRole(ctx context.Context, role, resource, action, field string, rc Context, perm *Permission, chain []string) (bool, error) {
	for _, ancestor := range chain {
		if ancestor == role {
			return false, errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance cycle: %s", strings.Join(append(chain, role), " -> ")))
		}
	}
	chain = append(chain, role)

	node, ok := a.store[role]
	if !ok {
		node, ok = a.store[Wildcard]
	}
	if !ok || node == nil {
		// An unregistered role is silent: not granted, no denial record.
		return false, nil
	}

	resName := resource
	actions, found := node.Resources[resource]
	if !found {
		resName = Wildcard
		actions, found = node.Resources[Wildcard]
	}
	if found {
		actName := action
		scopes, sok := actions[action]
		if !sok {
			actName = Wildcard
			scopes, sok = actions[Wildcard]
		}
		if sok {
			for i, sc := range scopes {
				prefix := fmt.Sprintf("%s:%s:%s:%d", role, resName, actName, i)
				granted, terminate, err := evalScope(ctx, sc, field, rc, perm, prefix)
				if err != nil {
					return false, err
				}
				if granted {
					return true, nil
				}
				if terminate {
					// Explicit deny: this role node is finished, inherited
					// roles are not consulted for it.
					perm.Deny("")
					return false, nil
				}
			}
		}
	}

	for _, parent := range node.Inherits {
		granted, err := a.canRole(ctx, parent, resource, action, field, rc, perm, chain)
		if err != nil {
			return false, err
		}
		if granted {
			return true, nil
		}
	}

	// Nothing granted in this role's subtree.
	perm.Deny("")
	return false, nil
}
