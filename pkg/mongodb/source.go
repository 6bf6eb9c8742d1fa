package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

// roleDocument is the collection shape: one document per role, keyed by role
// name. Rule order inside an action array is evaluation order.
type roleDocument struct {
	Role      string                               `bson:"_id"`
	Inherits  []string                             `bson:"inherits,omitempty"`
	Resources map[string]map[string][]ruleDocument `bson:"resources,omitempty"`
}

type ruleDocument struct {
	Effect         string   `bson:"effect"`
	Condition      string   `bson:"condition,omitempty"`
	Fields         []string `bson:"fields,omitempty"`
	FieldsFrom     string   `bson:"fields_from,omitempty"`
	Constraint     any      `bson:"constraint,omitempty"`
	ConstraintFrom string   `bson:"constraint_from,omitempty"`
}

// Source assembles policy documents from a MongoDB role collection. It
// implements policy.DocumentSource; adapt it into an engine source with
// policy.NewSource, or wrap it in a cache first.
type Source struct {
	coll *mongo.Collection
}

// NewSource returns a Source reading from the given collection.
func NewSource(coll *mongo.Collection) *Source {
	if coll == nil {
		panic("mongodb: collection cannot be nil")
	}
	return &Source{coll: coll}
}

// LoadDocument reads every role document in the collection into a policy
// document.
func (s *Source) LoadDocument(ctx context.Context) (*policy.Document, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}

	var roles []roleDocument
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}

	return documentFromRoles(roles), nil
}

// documentFromRoles converts decoded role documents into a policy document.
// Constraint values decoded as bson.D/bson.A are normalized into plain maps
// and slices so that documents fingerprint identically regardless of which
// backend loaded them.
func documentFromRoles(roles []roleDocument) *policy.Document {
	doc := &policy.Document{
		Version: policy.Version,
		Roles:   make(map[string]policy.RoleDoc, len(roles)),
	}

	for _, r := range roles {
		rd := policy.RoleDoc{Inherits: r.Inherits}
		if len(r.Resources) > 0 {
			rd.Resources = make(map[string]map[string][]policy.RuleDoc, len(r.Resources))
		}
		for resource, actions := range r.Resources {
			rd.Resources[resource] = make(map[string][]policy.RuleDoc, len(actions))
			for action, rules := range actions {
				converted := make([]policy.RuleDoc, len(rules))
				for i, rule := range rules {
					converted[i] = policy.RuleDoc{
						Effect:         rule.Effect,
						Condition:      rule.Condition,
						Fields:         rule.Fields,
						FieldsFrom:     rule.FieldsFrom,
						Constraint:     normalizeBSON(rule.Constraint),
						ConstraintFrom: rule.ConstraintFrom,
					}
				}
				rd.Resources[resource][action] = converted
			}
		}
		doc.Roles[r.Role] = rd
	}

	return doc
}

func normalizeBSON(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = normalizeBSON(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = normalizeBSON(e)
		}
		return m
	case bson.A:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = normalizeBSON(e)
		}
		return s
	default:
		return v
	}
}
