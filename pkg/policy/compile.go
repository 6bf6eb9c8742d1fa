package policy

import (
	"errors"
	"fmt"
	"slices"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
)

// Compile resolves the document's names against the registry and builds a
// policy store. Authoring mistakes, unknown names, bad effects, malformed
// field declarations, surface here rather than at query time. A nil registry
// resolves only the built-in All condition.
func (d *Document) Compile(reg *Registry) (accesscontrol.Store, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	store := make(accesscontrol.Store, len(d.Roles))
	for roleName, roleDoc := range d.Roles {
		role := &accesscontrol.Role{
			Resources: make(map[string]accesscontrol.Actions, len(roleDoc.Resources)),
			Inherits:  slices.Clone(roleDoc.Inherits),
		}
		for resName, actions := range roleDoc.Resources {
			built := make(accesscontrol.Actions, len(actions))
			for actName, rules := range actions {
				scopes := make([]accesscontrol.Scope, 0, len(rules))
				for i, rule := range rules {
					sc, err := compileRule(reg, rule)
					if err != nil {
						return nil, fmt.Errorf("role %q resource %q action %q rule %d: %w",
							roleName, resName, actName, i, err)
					}
					scopes = append(scopes, sc)
				}
				built[actName] = scopes
			}
			role.Resources[resName] = built
		}
		store[roleName] = role
	}
	return store, nil
}

func compileRule(reg *Registry, rule RuleDoc) (accesscontrol.Scope, error) {
	var sc accesscontrol.Scope

	switch accesscontrol.Effect(rule.Effect) {
	case accesscontrol.EffectGrant, accesscontrol.EffectDeny:
		sc.Effect = accesscontrol.Effect(rule.Effect)
	default:
		return sc, errors.Join(ErrInvalidEffect,
			fmt.Errorf("effect %q must be %q or %q", rule.Effect, accesscontrol.EffectGrant, accesscontrol.EffectDeny))
	}

	if rule.Condition != "" {
		cond, ok := reg.Condition(rule.Condition)
		if !ok {
			return sc, errors.Join(ErrUnknownCondition,
				fmt.Errorf("condition %q is not registered", rule.Condition))
		}
		sc.Condition = cond
	}

	if len(rule.Fields) > 0 && rule.FieldsFrom != "" {
		return sc, errors.Join(ErrConflictingRule,
			errors.New("fields and fields_from are mutually exclusive"))
	}
	if len(rule.Fields) > 0 {
		fields, err := accesscontrol.ParseFields(rule.Fields...)
		if err != nil {
			return sc, err
		}
		sc.Fields = accesscontrol.StaticFields(fields)
	}
	if rule.FieldsFrom != "" {
		gen, ok := reg.FieldGenerator(rule.FieldsFrom)
		if !ok {
			return sc, errors.Join(ErrUnknownFieldGenerator,
				fmt.Errorf("field generator %q is not registered", rule.FieldsFrom))
		}
		sc.Fields = gen
	}

	if rule.Constraint != nil && rule.ConstraintFrom != "" {
		return sc, errors.Join(ErrConflictingRule,
			errors.New("constraint and constraint_from are mutually exclusive"))
	}
	if rule.Constraint != nil {
		sc.Constraint = accesscontrol.StaticConstraint(rule.Constraint)
	}
	if rule.ConstraintFrom != "" {
		fn, ok := reg.Constraint(rule.ConstraintFrom)
		if !ok {
			return sc, errors.Join(ErrUnknownConstraintGenerator,
				fmt.Errorf("constraint generator %q is not registered", rule.ConstraintFrom))
		}
		sc.Constraint = accesscontrol.DynamicConstraint(rule.ConstraintFrom, fn)
	}

	return sc, nil
}
