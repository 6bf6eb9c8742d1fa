package policy

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Version is the document format version this package reads and writes.
const Version = 1

// Document is the serializable form of a policy store. Functions cannot be
// serialized, so rules reference conditions and generators by name; a
// Registry supplies the implementations at compile time.
type Document struct {
	Version int                `yaml:"version,omitempty" json:"version,omitempty"`
	Roles   map[string]RoleDoc `yaml:"roles" json:"roles"`
}

// RoleDoc declares one role: the roles it inherits from, in evaluation order,
// and its resources with their action rules.
type RoleDoc struct {
	Inherits  []string                        `yaml:"inherits,omitempty" json:"inherits,omitempty"`
	Resources map[string]map[string][]RuleDoc `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// RuleDoc declares one scope. Fields and FieldsFrom are mutually exclusive,
// as are Constraint and ConstraintFrom: the static form carries the value in
// the document, the From form names a registered generator.
type RuleDoc struct {
	Effect         string   `yaml:"effect" json:"effect"`
	Condition      string   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Fields         []string `yaml:"fields,omitempty" json:"fields,omitempty"`
	FieldsFrom     string   `yaml:"fields_from,omitempty" json:"fields_from,omitempty"`
	Constraint     any      `yaml:"constraint,omitempty" json:"constraint,omitempty"`
	ConstraintFrom string   `yaml:"constraint_from,omitempty" json:"constraint_from,omitempty"`
}

// ParseYAML decodes a policy document. A missing version means the current
// one; newer versions are rejected.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	if doc.Version != Version {
		return nil, errors.Join(ErrUnsupportedVersion,
			fmt.Errorf("document version %d, supported version %d", doc.Version, Version))
	}
	if doc.Roles == nil {
		doc.Roles = map[string]RoleDoc{}
	}
	return &doc, nil
}

// EncodeYAML encodes the document for storage.
func (d *Document) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// Fingerprint returns a stable hex digest of the document content, usable as
// a cache key or change marker. Rule order matters to evaluation, so it
// matters to the fingerprint too; map ordering does not.
func (d *Document) Fingerprint() (string, error) {
	// encoding/json sorts map keys, which makes the digest independent of
	// declaration order for roles, resources and actions.
	data, err := json.Marshal(d)
	if err != nil {
		return "", errors.Join(ErrInvalidDocument, err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
