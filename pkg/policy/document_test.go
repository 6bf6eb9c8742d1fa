package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

const sampleYAML = `
version: 1
roles:
  public:
    resources:
      "*":
        "*":
          - effect: deny
  author:
    inherits: [public]
    resources:
      article:
        read:
          - effect: grant
            condition: userIsOwner
            fields: ["*", "!history"]
        list:
          - effect: grant
            constraint_from: ownArticles
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		doc, err := policy.ParseYAML([]byte(sampleYAML))
		require.NoError(t, err)
		assert.Equal(t, policy.Version, doc.Version)
		require.Contains(t, doc.Roles, "public")
		require.Contains(t, doc.Roles, "author")

		author := doc.Roles["author"]
		assert.Equal(t, []string{"public"}, author.Inherits)

		read := author.Resources["article"]["read"]
		require.Len(t, read, 1)
		assert.Equal(t, "grant", read[0].Effect)
		assert.Equal(t, "userIsOwner", read[0].Condition)
		assert.Equal(t, []string{"*", "!history"}, read[0].Fields)

		list := author.Resources["article"]["list"]
		require.Len(t, list, 1)
		assert.Equal(t, "ownArticles", list[0].ConstraintFrom)
	})

	t.Run("missing version defaults to current", func(t *testing.T) {
		t.Parallel()

		doc, err := policy.ParseYAML([]byte("roles: {}"))
		require.NoError(t, err)
		assert.Equal(t, policy.Version, doc.Version)
		assert.NotNil(t, doc.Roles)
	})

	t.Run("newer version rejected", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ParseYAML([]byte("version: 99\nroles: {}"))
		require.ErrorIs(t, err, policy.ErrUnsupportedVersion)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ParseYAML([]byte("roles: ["))
		require.ErrorIs(t, err, policy.ErrInvalidDocument)
	})
}

func TestDocument_EncodeYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := policy.ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	encoded, err := doc.EncodeYAML()
	require.NoError(t, err)

	decoded, err := policy.ParseYAML(encoded)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestDocument_Fingerprint(t *testing.T) {
	t.Parallel()

	t.Run("stable across calls", func(t *testing.T) {
		t.Parallel()

		doc, err := policy.ParseYAML([]byte(sampleYAML))
		require.NoError(t, err)

		first, err := doc.Fingerprint()
		require.NoError(t, err)
		second, err := doc.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("independent of role declaration order", func(t *testing.T) {
		t.Parallel()

		a := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"alpha": {Inherits: []string{"beta"}},
			"beta":  {},
		}}
		b := &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
			"beta":  {},
			"alpha": {Inherits: []string{"beta"}},
		}}

		fpA, err := a.Fingerprint()
		require.NoError(t, err)
		fpB, err := b.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, fpA, fpB)
	})

	t.Run("sensitive to rule order", func(t *testing.T) {
		t.Parallel()

		rules := func(first, second string) *policy.Document {
			return &policy.Document{Version: 1, Roles: map[string]policy.RoleDoc{
				"role": {Resources: map[string]map[string][]policy.RuleDoc{
					"doc": {"read": {
						{Effect: "grant", Condition: first},
						{Effect: "grant", Condition: second},
					}},
				}},
			}}
		}

		fpA, err := rules("one", "two").Fingerprint()
		require.NoError(t, err)
		fpB, err := rules("two", "one").Fingerprint()
		require.NoError(t, err)
		assert.NotEqual(t, fpA, fpB)
	})

	t.Run("sensitive to any rule change", func(t *testing.T) {
		t.Parallel()

		doc, err := policy.ParseYAML([]byte(sampleYAML))
		require.NoError(t, err)
		before, err := doc.Fingerprint()
		require.NoError(t, err)

		changed := doc.Roles["author"].Resources["article"]["read"]
		changed[0].Condition = "somethingElse"

		after, err := doc.Fingerprint()
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})
}
