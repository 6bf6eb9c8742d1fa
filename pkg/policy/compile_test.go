package policy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

func TestDocument_Compile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("compiled store evaluates like hand-built policy", func(t *testing.T) {
		t.Parallel()

		reg := policy.NewRegistry()
		require.NoError(t, reg.RegisterCondition(accesscontrol.Condition{
			Name: "userIsOwner",
			Test: func(_ context.Context, rc accesscontrol.Context) (bool, error) {
				return rc["user"] == rc["owner"], nil
			},
		}))
		require.NoError(t, reg.RegisterConstraint("ownArticles", func(_ context.Context, rc accesscontrol.Context) (any, error) {
			return map[string]any{"owner_id": rc["user"]}, nil
		}))

		doc, err := policy.ParseYAML([]byte(sampleYAML))
		require.NoError(t, err)

		store, err := doc.Compile(reg)
		require.NoError(t, err)

		ac := accesscontrol.NewFromStore(store)

		perm, err := ac.Can(ctx, "author", "article:read", accesscontrol.Context{"user": "a", "owner": "a"})
		require.NoError(t, err)
		assert.True(t, perm.Granted())
		assert.Equal(t, "grant:author:article:read:0::userIsOwner", perm.GrantedPath())
		assert.True(t, perm.Field("title"))
		assert.False(t, perm.Field("history"))

		perm, err = ac.Can(ctx, "author", "article:read", accesscontrol.Context{"user": "a", "owner": "b"})
		require.NoError(t, err)
		assert.False(t, perm.Granted())
		assert.Equal(t, []string{
			"grant:author:article:read:0::userIsOwner",
			"deny:public:*:*:0::All",
		}, perm.Denied())

		perm, err = ac.Can(ctx, "author", "article:list", accesscontrol.Context{"user": "a"})
		require.NoError(t, err)
		require.True(t, perm.Granted())
		constraint, ok := perm.Constraint()
		require.True(t, ok)
		assert.Equal(t, map[string]any{"owner_id": "a"}, constraint)
	})

	t.Run("static constraint value", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"reporter": {Resources: map[string]map[string][]policy.RuleDoc{
				"report": {"list": {{Effect: "grant", Constraint: map[string]any{"status": "published"}}}},
			}},
		}}

		store, err := doc.Compile(nil)
		require.NoError(t, err)

		perm, err := accesscontrol.NewFromStore(store).Can(ctx, "reporter", "report:list", nil)
		require.NoError(t, err)
		require.True(t, perm.Granted())
		constraint, ok := perm.Constraint()
		require.True(t, ok)
		assert.Equal(t, map[string]any{"status": "published"}, constraint)
	})

	t.Run("empty condition compiles to All", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant"}}},
			}},
		}}

		store, err := doc.Compile(nil)
		require.NoError(t, err)

		perm, err := accesscontrol.NewFromStore(store).Can(ctx, "viewer", "doc:read", nil)
		require.NoError(t, err)
		assert.Equal(t, "grant:viewer:doc:read:0::All", perm.GrantedPath())
	})

	t.Run("unknown condition", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", Condition: "missing"}}},
			}},
		}}

		_, err := doc.Compile(policy.NewRegistry())
		require.ErrorIs(t, err, policy.ErrUnknownCondition)
		assert.ErrorContains(t, err, `role "viewer"`)
	})

	t.Run("unknown field generator", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", FieldsFrom: "missing"}}},
			}},
		}}

		_, err := doc.Compile(policy.NewRegistry())
		require.ErrorIs(t, err, policy.ErrUnknownFieldGenerator)
	})

	t.Run("unknown constraint generator", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", ConstraintFrom: "missing"}}},
			}},
		}}

		_, err := doc.Compile(policy.NewRegistry())
		require.ErrorIs(t, err, policy.ErrUnknownConstraintGenerator)
	})

	t.Run("invalid effect", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "allow"}}},
			}},
		}}

		_, err := doc.Compile(nil)
		require.ErrorIs(t, err, policy.ErrInvalidEffect)
	})

	t.Run("conflicting field declarations", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", Fields: []string{"*"}, FieldsFrom: "gen"}}},
			}},
		}}

		_, err := doc.Compile(nil)
		require.ErrorIs(t, err, policy.ErrConflictingRule)
	})

	t.Run("conflicting constraint declarations", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", Constraint: 1, ConstraintFrom: "gen"}}},
			}},
		}}

		_, err := doc.Compile(nil)
		require.ErrorIs(t, err, policy.ErrConflictingRule)
	})

	t.Run("malformed field declaration", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", Fields: []string{"!"}}}},
			}},
		}}

		_, err := doc.Compile(nil)
		require.ErrorIs(t, err, accesscontrol.ErrInvalidFieldName)
	})
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("loads and compiles", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant"}}},
			}},
		}}
		source := policy.NewSource(staticDocs{doc: doc}, policy.NewRegistry())

		ac, err := accesscontrol.NewFromSource(ctx, source)
		require.NoError(t, err)

		perm, err := ac.Can(ctx, "viewer", "doc:read", nil)
		require.NoError(t, err)
		assert.True(t, perm.Granted())
	})

	t.Run("propagates document source failures", func(t *testing.T) {
		t.Parallel()

		source := policy.NewSource(staticDocs{err: assert.AnError}, policy.NewRegistry())
		_, err := source.Load(ctx)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("propagates compile failures", func(t *testing.T) {
		t.Parallel()

		doc := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"viewer": {Resources: map[string]map[string][]policy.RuleDoc{
				"doc": {"read": {{Effect: "grant", Condition: "missing"}}},
			}},
		}}
		source := policy.NewSource(staticDocs{doc: doc}, policy.NewRegistry())
		_, err := source.Load(ctx)
		require.ErrorIs(t, err, policy.ErrUnknownCondition)
	})

	t.Run("nil dependencies panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { policy.NewSource(nil, policy.NewRegistry()) })
		assert.Panics(t, func() { policy.NewSource(staticDocs{}, nil) })
	})
}

// Helper types

type staticDocs struct {
	doc *policy.Document
	err error
}

func (s staticDocs) LoadDocument(context.Context) (*policy.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}
