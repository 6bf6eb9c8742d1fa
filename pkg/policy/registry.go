package policy

import (
	"errors"
	"fmt"
	"sync"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
)

// Registry maps the names used in policy documents to condition and
// generator implementations. Registration normally happens once at startup,
// but the registry is safe for concurrent use so documents can be recompiled
// while the application serves traffic.
type Registry struct {
	mu          sync.RWMutex
	conditions  map[string]accesscontrol.Condition
	fieldGens   map[string]accesscontrol.FieldGenerator
	constraints map[string]accesscontrol.ConstraintFunc
}

// NewRegistry returns a registry with the All condition pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		conditions:  make(map[string]accesscontrol.Condition),
		fieldGens:   make(map[string]accesscontrol.FieldGenerator),
		constraints: make(map[string]accesscontrol.ConstraintFunc),
	}
	r.conditions[accesscontrol.All.Name] = accesscontrol.All
	return r
}

// RegisterCondition makes a named condition available to documents.
func (r *Registry) RegisterCondition(cond accesscontrol.Condition) error {
	if cond.Name == "" || cond.Test == nil {
		return ErrUnnamedRegistration
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.conditions[cond.Name]; exists {
		return errors.Join(ErrDuplicateRegistration,
			fmt.Errorf("condition %q is already registered", cond.Name))
	}
	r.conditions[cond.Name] = cond
	return nil
}

// RegisterFieldGenerator makes a named field generator available to documents.
func (r *Registry) RegisterFieldGenerator(gen accesscontrol.FieldGenerator) error {
	if gen.Name == "" || gen.Generate == nil {
		return ErrUnnamedRegistration
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.fieldGens[gen.Name]; exists {
		return errors.Join(ErrDuplicateRegistration,
			fmt.Errorf("field generator %q is already registered", gen.Name))
	}
	r.fieldGens[gen.Name] = gen
	return nil
}

// RegisterConstraint makes a named constraint generator available to documents.
func (r *Registry) RegisterConstraint(name string, fn accesscontrol.ConstraintFunc) error {
	if name == "" || fn == nil {
		return ErrUnnamedRegistration
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constraints[name]; exists {
		return errors.Join(ErrDuplicateRegistration,
			fmt.Errorf("constraint generator %q is already registered", name))
	}
	r.constraints[name] = fn
	return nil
}

// Condition returns the registered condition with the given name.
func (r *Registry) Condition(name string) (accesscontrol.Condition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cond, ok := r.conditions[name]
	return cond, ok
}

// FieldGenerator returns the registered field generator with the given name.
func (r *Registry) FieldGenerator(name string) (accesscontrol.FieldGenerator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.fieldGens[name]
	return gen, ok
}

// Constraint returns the registered constraint generator with the given name.
func (r *Registry) Constraint(name string) (accesscontrol.ConstraintFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.constraints[name]
	return fn, ok
}
