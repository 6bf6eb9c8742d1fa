package accesscontrol

import (
	"context"
	"errors"
)

// ConditionFunc reports whether a scope applies to the request. Implementations
// may block on external lookups; the engine waits for each call to return.
type ConditionFunc func(ctx context.Context, rc Context) (bool, error)

// Condition pairs a predicate with the name identifying it in decision paths.
// The name is explicit metadata, never derived from the function value.
type Condition struct {
	Name string
	Test ConditionFunc
}

// All matches unconditionally. A Scope declared without a condition behaves
// as if it used All.
var All = Condition{
	Name: "All",
	Test: func(context.Context, Context) (bool, error) { return true, nil },
}

// anonymousName labels named-less predicates in decision paths.
const anonymousName = "anonymous"

// name returns the identifier recorded for this condition in decision paths.
func (c Condition) name() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Test == nil {
		return All.Name
	}
	return anonymousName
}

// test evaluates the condition, treating a nil predicate as All. Errors and
// panics from the predicate count as a non-match for this condition only;
// they never abort the query.
func (c Condition) test(ctx context.Context, rc Context) (ok bool) {
	if c.Test == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	res, err := c.Test(ctx, rc)
	if err != nil {
		return false
	}
	return res
}

// ConstraintFunc derives a constraint value from the request.
type ConstraintFunc func(ctx context.Context, rc Context) (any, error)

// Constraint attaches a value to a granting scope, fixed or generated per
// request, for downstream use such as data filters. The zero value declares
// no constraint.
type Constraint struct {
	Name     string
	Value    any
	Generate ConstraintFunc
}

// StaticConstraint declares a constraint with a fixed value.
func StaticConstraint(v any) Constraint {
	return Constraint{Value: v}
}

// DynamicConstraint declares a constraint generated per request.
func DynamicConstraint(name string, fn ConstraintFunc) Constraint {
	return Constraint{Name: name, Generate: fn}
}

// isZero reports whether no constraint was declared.
func (c Constraint) isZero() bool {
	return c.Name == "" && c.Value == nil && c.Generate == nil
}

// resolve returns the constraint value for this request. Unlike condition
// errors, generator failures abort the query.
func (c Constraint) resolve(ctx context.Context, rc Context) (any, error) {
	if c.Generate == nil {
		return c.Value, nil
	}
	v, err := c.Generate(ctx, rc)
	if err != nil {
		return nil, errors.Join(ErrConstraintGenerator, err)
	}
	return v, nil
}

// FieldsFunc derives a field visibility map from the request.
type FieldsFunc func(ctx context.Context, rc Context) (FieldMap, error)

// FieldGenerator produces the field visibility map of a scope, fixed or per
// request. The zero value declares no field differentiation.
type FieldGenerator struct {
	Name     string
	Generate FieldsFunc
}

// StaticFields wraps a fixed field map as a generator.
func StaticFields(fields FieldMap) FieldGenerator {
	return FieldGenerator{
		Name:     "Fields",
		Generate: func(context.Context, Context) (FieldMap, error) { return fields, nil },
	}
}

// DynamicFields declares a per-request field map generator.
func DynamicFields(name string, fn FieldsFunc) FieldGenerator {
	return FieldGenerator{Name: name, Generate: fn}
}

// isZero reports whether no generator was declared.
func (g FieldGenerator) isZero() bool {
	return g.Name == "" && g.Generate == nil
}

// resolve returns the scope's field map, empty when none was declared.
// Unlike condition errors, generator failures abort the query.
func (g FieldGenerator) resolve(ctx context.Context, rc Context) (FieldMap, error) {
	if g.Generate == nil {
		return FieldMap{}, nil
	}
	m, err := g.Generate(ctx, rc)
	if err != nil {
		return nil, errors.Join(ErrFieldGenerator, err)
	}
	if m == nil {
		m = FieldMap{}
	}
	return m, nil
}
