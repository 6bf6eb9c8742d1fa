package accesscontrol

import "errors"

// Domain errors for access control queries and policy declaration.
var (
	// ErrCircularInheritance is returned when role inheritance forms a cycle.
	ErrCircularInheritance = errors.New("accesscontrol.circular_inheritance")

	// ErrFieldGenerator is returned when a scope's field generator fails.
	ErrFieldGenerator = errors.New("accesscontrol.field_generator_failed")

	// ErrConstraintGenerator is returned when a scope's constraint generator fails.
	ErrConstraintGenerator = errors.New("accesscontrol.constraint_generator_failed")

	// ErrInvalidFieldName is returned for malformed field declarations.
	ErrInvalidFieldName = errors.New("accesscontrol.invalid_field_name")
)
