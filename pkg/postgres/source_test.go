package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	t.Run("assembles roles and rules", func(t *testing.T) {
		t.Parallel()

		roles := []roleRow{
			{Role: "user", Inherits: nil},
			{Role: "author", Inherits: []string{"user"}},
		}
		rules := []ruleRow{
			{Role: "author", Resource: "article", Action: "update", Effect: "grant",
				Condition: "userIsOwner", Fields: []string{"*", "!history"}},
			{Role: "author", Resource: "article", Action: "update", Effect: "deny"},
			{Role: "user", Resource: "article", Action: "read", Effect: "grant",
				ConstraintJSON: []byte(`{"tenant":"acme"}`)},
		}

		doc, err := buildDocument(roles, rules)
		require.NoError(t, err)
		require.Equal(t, policy.Version, doc.Version)
		require.Len(t, doc.Roles, 2)

		author := doc.Roles["author"]
		assert.Equal(t, []string{"user"}, author.Inherits)
		updateRules := author.Resources["article"]["update"]
		require.Len(t, updateRules, 2)
		assert.Equal(t, "grant", updateRules[0].Effect)
		assert.Equal(t, "userIsOwner", updateRules[0].Condition)
		assert.Equal(t, []string{"*", "!history"}, updateRules[0].Fields)
		assert.Equal(t, "deny", updateRules[1].Effect)

		readRules := doc.Roles["user"].Resources["article"]["read"]
		require.Len(t, readRules, 1)
		assert.Equal(t, map[string]any{"tenant": "acme"}, readRules[0].Constraint)
	})

	t.Run("empty tables produce empty document", func(t *testing.T) {
		t.Parallel()

		doc, err := buildDocument(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, policy.Version, doc.Version)
		assert.Empty(t, doc.Roles)
	})

	t.Run("rule for undeclared role", func(t *testing.T) {
		t.Parallel()

		rules := []ruleRow{
			{Role: "ghost", Resource: "article", Action: "read", Effect: "grant"},
		}
		_, err := buildDocument(nil, rules)
		require.ErrorIs(t, err, ErrMalformedPolicyRow)
	})

	t.Run("bad constraint payload", func(t *testing.T) {
		t.Parallel()

		roles := []roleRow{{Role: "user"}}
		rules := []ruleRow{
			{Role: "user", Resource: "article", Action: "read", Effect: "grant",
				ConstraintJSON: []byte(`{broken`)},
		}
		_, err := buildDocument(roles, rules)
		require.ErrorIs(t, err, ErrMalformedPolicyRow)
	})

	t.Run("document compiles and evaluates", func(t *testing.T) {
		t.Parallel()

		roles := []roleRow{
			{Role: "user"},
			{Role: "admin", Inherits: []string{"user"}},
		}
		rules := []ruleRow{
			{Role: "user", Resource: "report", Action: "read", Effect: "grant", Condition: "sameTeam"},
			{Role: "admin", Resource: "report", Action: "delete", Effect: "grant"},
		}

		doc, err := buildDocument(roles, rules)
		require.NoError(t, err)

		reg := policy.NewRegistry()
		require.NoError(t, reg.RegisterCondition(accesscontrol.Condition{
			Name: "sameTeam",
			Test: func(_ context.Context, rc accesscontrol.Context) (bool, error) {
				return rc["team"] == "core", nil
			},
		}))

		store, err := doc.Compile(reg)
		require.NoError(t, err)
		ac := accesscontrol.NewFromStore(store)

		perm, err := ac.Can(context.Background(), "admin", "report:read",
			accesscontrol.Context{"team": "core"})
		require.NoError(t, err)
		require.True(t, perm.Granted())
		assert.Equal(t, "grant:user:report:read:0::sameTeam", perm.GrantedPath())

		perm, err = ac.Can(context.Background(), "admin", "report:delete", nil)
		require.NoError(t, err)
		require.True(t, perm.Granted())
		assert.Equal(t, "grant:admin:report:delete:0::All", perm.GrantedPath())
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		assert.True(t, IsNotFoundError(pgx.ErrNoRows))
		assert.False(t, IsNotFoundError(nil))
		assert.False(t, IsNotFoundError(assert.AnError))
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()
		assert.True(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
		assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
		assert.False(t, IsDuplicateKeyError(nil))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		t.Parallel()
		assert.True(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23503"}))
		assert.False(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
		assert.False(t, IsForeignKeyViolationError(nil))
	})
}
