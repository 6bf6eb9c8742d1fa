package policy

import "errors"

var (
	// ErrInvalidDocument is returned when a document cannot be decoded.
	ErrInvalidDocument = errors.New("policy: invalid document")

	// ErrUnsupportedVersion is returned for documents newer than this package understands.
	ErrUnsupportedVersion = errors.New("policy: unsupported document version")

	// ErrInvalidEffect is returned when a rule's effect is neither grant nor deny.
	ErrInvalidEffect = errors.New("policy: invalid rule effect")

	// ErrUnknownCondition is returned when a rule names an unregistered condition.
	ErrUnknownCondition = errors.New("policy: unknown condition")

	// ErrUnknownFieldGenerator is returned when a rule names an unregistered field generator.
	ErrUnknownFieldGenerator = errors.New("policy: unknown field generator")

	// ErrUnknownConstraintGenerator is returned when a rule names an unregistered constraint generator.
	ErrUnknownConstraintGenerator = errors.New("policy: unknown constraint generator")

	// ErrConflictingRule is returned when a rule declares both the static and
	// the generated variant of fields or constraint.
	ErrConflictingRule = errors.New("policy: conflicting rule declarations")

	// ErrDuplicateRegistration is returned when a registry name is taken.
	ErrDuplicateRegistration = errors.New("policy: name already registered")

	// ErrUnnamedRegistration is returned when a registration lacks a name or function.
	ErrUnnamedRegistration = errors.New("policy: registration requires a name and a function")
)
