package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

const (
	rolesQuery = `SELECT role, inherits FROM acp_roles`

	rulesQuery = `SELECT role, resource, action, effect, condition, fields, fields_from, constraint_json, constraint_from
FROM acp_rules
ORDER BY role, resource, action, position`
)

// Source assembles policy documents from the acp_roles and acp_rules tables.
// It implements policy.DocumentSource; adapt it into an engine source with
// policy.NewSource, or wrap it in a cache first.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource returns a Source reading from the given pool. The policy schema
// must be in place, see Migrate.
func NewSource(pool *pgxpool.Pool) *Source {
	if pool == nil {
		panic("postgres: connection pool cannot be nil")
	}
	return &Source{pool: pool}
}

// LoadDocument reads the current table contents into a policy document. Rule
// order within a (role, resource, action) group follows the position column,
// which is the order rules are evaluated in.
func (s *Source) LoadDocument(ctx context.Context) (*policy.Document, error) {
	roles, err := s.queryRoles(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.queryRules(ctx)
	if err != nil {
		return nil, err
	}
	return buildDocument(roles, rules)
}

type roleRow struct {
	Role     string
	Inherits []string
}

type ruleRow struct {
	Role           string
	Resource       string
	Action         string
	Effect         string
	Condition      string
	Fields         []string
	FieldsFrom     string
	ConstraintJSON []byte
	ConstraintFrom string
}

func (s *Source) queryRoles(ctx context.Context) ([]roleRow, error) {
	rows, err := s.pool.Query(ctx, rolesQuery)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}
	defer rows.Close()

	var roles []roleRow
	for rows.Next() {
		var r roleRow
		if err := rows.Scan(&r.Role, &r.Inherits); err != nil {
			return nil, errors.Join(ErrFailedToLoadPolicy, err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}
	return roles, nil
}

func (s *Source) queryRules(ctx context.Context) ([]ruleRow, error) {
	rows, err := s.pool.Query(ctx, rulesQuery)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}
	defer rows.Close()

	var rules []ruleRow
	for rows.Next() {
		var r ruleRow
		if err := rows.Scan(&r.Role, &r.Resource, &r.Action, &r.Effect, &r.Condition,
			&r.Fields, &r.FieldsFrom, &r.ConstraintJSON, &r.ConstraintFrom); err != nil {
			return nil, errors.Join(ErrFailedToLoadPolicy, err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToLoadPolicy, err)
	}
	return rules, nil
}

// buildDocument assembles rows into a document. Rules must arrive in
// evaluation order; a rule naming an undeclared role is rejected.
func buildDocument(roles []roleRow, rules []ruleRow) (*policy.Document, error) {
	doc := &policy.Document{
		Version: policy.Version,
		Roles:   make(map[string]policy.RoleDoc, len(roles)),
	}

	for _, r := range roles {
		doc.Roles[r.Role] = policy.RoleDoc{
			Inherits:  r.Inherits,
			Resources: map[string]map[string][]policy.RuleDoc{},
		}
	}

	for _, r := range rules {
		role, ok := doc.Roles[r.Role]
		if !ok {
			return nil, errors.Join(ErrMalformedPolicyRow,
				fmt.Errorf("rule references undeclared role %q", r.Role))
		}

		rule := policy.RuleDoc{
			Effect:         r.Effect,
			Condition:      r.Condition,
			Fields:         r.Fields,
			FieldsFrom:     r.FieldsFrom,
			ConstraintFrom: r.ConstraintFrom,
		}
		if len(r.ConstraintJSON) > 0 {
			if err := json.Unmarshal(r.ConstraintJSON, &rule.Constraint); err != nil {
				return nil, errors.Join(ErrMalformedPolicyRow,
					fmt.Errorf("role %q resource %q action %q: bad constraint payload: %w",
						r.Role, r.Resource, r.Action, err))
			}
		}

		resources := role.Resources
		if resources[r.Resource] == nil {
			resources[r.Resource] = map[string][]policy.RuleDoc{}
		}
		resources[r.Resource][r.Action] = append(resources[r.Resource][r.Action], rule)
	}

	return doc, nil
}
