package scopes

import "strings"

const (
	// Delimiter separates the parts of a scope path (e.g. "article:read").
	Delimiter = ":"

	// Wildcard matches any resource or action name.
	Wildcard = "*"
)

// Split breaks a scope path of the form "resource:action" or
// "resource:action:field" into its parts.
//
// Missing parts are empty strings and anything past the third delimiter is
// ignored, mirroring how the evaluator treats scope paths.
//
// Example:
//
//	resource, action, field := scopes.Split("article:read:title")
//	// Returns: "article", "read", "title"
func Split(path string) (resource, action, field string) {
	parts := strings.SplitN(path, Delimiter, 4)
	resource = parts[0]
	if len(parts) > 1 {
		action = parts[1]
	}
	if len(parts) > 2 {
		field = parts[2]
	}
	return resource, action, field
}

// Join assembles a scope path from its parts, omitting a trailing empty field.
//
// Example:
//
//	path := scopes.Join("article", "read", "")
//	// Returns: "article:read"
func Join(resource, action, field string) string {
	if field == "" {
		return resource + Delimiter + action
	}
	return resource + Delimiter + action + Delimiter + field
}

// Validate reports whether a scope path names at least a resource and an
// action, neither empty. It returns ErrInvalidScopePath otherwise.
//
// Example:
//
//	if err := scopes.Validate(path); err != nil {
//	    // Reject the path before it reaches the evaluator.
//	}
func Validate(path string) error {
	resource, action, _ := Split(path)
	if resource == "" || action == "" {
		return ErrInvalidScopePath
	}
	return nil
}
