package accesscontrol

import (
	"errors"
	"fmt"
	"strings"
)

// FieldMap records per-field visibility for a scope. Keys are field names or
// the wildcard; true permits the field, false masks it.
type FieldMap map[string]bool

// Test reports whether the named field is permitted. An exact entry takes
// precedence over the wildcard entry; a field with no matching entry is not
// permitted. The returned key is the entry that decided the outcome, empty
// when none matched.
func (m FieldMap) Test(field string) (string, bool) {
	if v, ok := m[field]; ok {
		return field, v
	}
	if v, ok := m[Wildcard]; ok {
		return Wildcard, v
	}
	return "", false
}

// ParseFields builds a FieldMap from field declarations. A plain name permits
// the field, a "!" prefix masks it: ParseFields("*", "!secret") permits every
// field except secret. Names may be the wildcard or any non-empty run of
// letters, digits, '_', '-' and '.'.
func ParseFields(names ...string) (FieldMap, error) {
	fields := make(FieldMap, len(names))
	for _, decl := range names {
		name := decl
		permitted := true
		if strings.HasPrefix(name, "!") {
			permitted = false
			name = name[1:]
		}
		if !validFieldName(name) {
			return nil, errors.Join(ErrInvalidFieldName,
				fmt.Errorf("malformed field declaration %q", decl))
		}
		fields[name] = permitted
	}
	return fields, nil
}

// MustParseFields is like ParseFields but panics on malformed declarations.
// It is intended for policy declared in code, where a bad field name is a
// programming error.
func MustParseFields(names ...string) FieldMap {
	fields, err := ParseFields(names...)
	if err != nil {
		panic(err)
	}
	return fields
}

func validFieldName(name string) bool {
	if name == Wildcard {
		return true
	}
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
