package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/scopes"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		resource string
		action   string
		field    string
	}{
		{name: "resource and action", path: "article:read", resource: "article", action: "read"},
		{name: "with field", path: "article:read:title", resource: "article", action: "read", field: "title"},
		{name: "resource only", path: "article", resource: "article"},
		{name: "empty path", path: ""},
		{name: "wildcards", path: "*:*", resource: "*", action: "*"},
		{name: "trailing delimiter", path: "article:read:", resource: "article", action: "read"},
		{name: "extra parts ignored", path: "article:read:title:junk:more", resource: "article", action: "read", field: "title"},
		{name: "empty action", path: "article::title", resource: "article", action: "", field: "title"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resource, action, field := scopes.Split(tt.path)
			assert.Equal(t, tt.resource, resource)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "article:read", scopes.Join("article", "read", ""))
	assert.Equal(t, "article:read:title", scopes.Join("article", "read", "title"))
	assert.Equal(t, "*:*", scopes.Join("*", "*", ""))
}

func TestJoinSplitRoundTrip(t *testing.T) {
	t.Parallel()

	resource, action, field := scopes.Split(scopes.Join("article", "read", "title"))
	assert.Equal(t, "article", resource)
	assert.Equal(t, "read", action)
	assert.Equal(t, "title", field)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid paths", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, scopes.Validate("article:read"))
		require.NoError(t, scopes.Validate("article:read:title"))
		require.NoError(t, scopes.Validate("*:*"))
	})

	t.Run("invalid paths", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, scopes.Validate(""), scopes.ErrInvalidScopePath)
		require.ErrorIs(t, scopes.Validate("article"), scopes.ErrInvalidScopePath)
		require.ErrorIs(t, scopes.Validate(":read"), scopes.ErrInvalidScopePath)
		require.ErrorIs(t, scopes.Validate("article:"), scopes.ErrInvalidScopePath)
	})
}
