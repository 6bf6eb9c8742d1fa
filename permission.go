package accesscontrol

import "fmt"

// Permission accumulates the outcome of one access check. Evaluation records
// at most one grant plus the denial paths encountered along the way; the
// caller receives it as a finished snapshot.
type Permission struct {
	granted       bool
	grantedPath   string
	denied        []string
	fields        FieldMap
	constraint    any
	hasConstraint bool
}

// NewPermission returns an empty Permission ready to accumulate a check.
func NewPermission() *Permission {
	return &Permission{}
}

// Grant marks the permission granted at the given decision path with the
// granting scope's field visibility. Granting twice is a programming error
// and panics.
func (p *Permission) Grant(path string, fields FieldMap) {
	p.grant(path, fields, nil, false)
}

// GrantWithConstraint is Grant carrying the granting scope's constraint value.
func (p *Permission) GrantWithConstraint(path string, fields FieldMap, constraint any) {
	p.grant(path, fields, constraint, true)
}

func (p *Permission) grant(path string, fields FieldMap, constraint any, hasConstraint bool) {
	if p.granted {
		panic(fmt.Sprintf("accesscontrol: permission already granted at %q", p.grantedPath))
	}
	if fields == nil {
		fields = FieldMap{}
	}
	p.granted = true
	p.grantedPath = path
	p.fields = fields
	p.constraint = constraint
	p.hasConstraint = hasConstraint
}

// Deny records a denial decision path. An empty path marks the permission
// checked-and-not-granted without adding a record, distinguishing "no scope
// matched" from "never evaluated".
func (p *Permission) Deny(path string) {
	if p.denied == nil {
		p.denied = []string{}
	}
	if path != "" {
		p.denied = append(p.denied, path)
	}
}

// Granted reports whether the check ended in a grant.
func (p *Permission) Granted() bool {
	return p.granted
}

// GrantedPath returns the decision path of the granting scope, empty when
// nothing was granted.
func (p *Permission) GrantedPath() string {
	return p.grantedPath
}

// Denied returns the denial decision paths recorded during the check, oldest
// first. It is nil when no role was evaluated far enough to record anything,
// and empty but non-nil when evaluation finished without any scope matching.
// A granted permission keeps the denials recorded before the grant. Treat
// the returned slice as read-only.
func (p *Permission) Denied() []string {
	return p.denied
}

// Field reports whether the named field is permitted on the granted scope.
// It is always false when nothing was granted.
func (p *Permission) Field(name string) bool {
	if !p.granted {
		return false
	}
	_, permitted := p.fields.Test(name)
	return permitted
}

// Fields returns the granting scope's field visibility map, nil when nothing
// was granted. Treat the returned map as read-only.
func (p *Permission) Fields() FieldMap {
	if !p.granted {
		return nil
	}
	return p.fields
}

// Constraint returns the granting scope's constraint value and whether the
// scope declared one.
func (p *Permission) Constraint() (any, bool) {
	if !p.granted || !p.hasConstraint {
		return nil, false
	}
	return p.constraint, true
}
