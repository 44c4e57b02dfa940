package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/core/domain"
)

func TestValidateCrateName(t *testing.T) {
	tests := []struct {
		name    string
		crate   string
		wantErr bool
	}{
		{"self", "", false},
		{"simple", "_deps/foo", false},
		{"nested", "a/b/c", false},
		{"leading slash", "/abs", true},
		{"trailing slash", "foo/", true},
		{"double slash", "a//b", true},
		{"dot segment", "a/./b", true},
		{"parent segment", "../escape", true},
		{"backslash", `a\b`, true},
		{"colon", "a:b", true},
		{"padded segment", "a/ b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateCrateName(tt.crate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseEdgeRef(t *testing.T) {
	ref, err := domain.ParseEdgeRef("_deps/foo:bar")
	require.NoError(t, err)
	assert.Equal(t, domain.EdgeRef{Crate: "_deps/foo", Dependency: "bar"}, ref)
	assert.Equal(t, "_deps/foo:bar", ref.String())

	ref, err = domain.ParseEdgeRef("bar")
	require.NoError(t, err)
	assert.Equal(t, domain.EdgeRef{Dependency: "bar"}, ref)

	_, err = domain.ParseEdgeRef("foo:")
	assert.Error(t, err)
}

func TestDocument_Accessors(t *testing.T) {
	doc := domain.Document{
		"url":      "https://example.com/x.git",
		"branch":   "main",
		"branches": []any{"v1", "v2"},
		"count":    3,
	}

	url, err := doc.String("url")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x.git", url)

	_, err = doc.String("missing")
	assert.ErrorContains(t, err, domain.ErrMissingField.Error())

	_, err = doc.String("count")
	assert.ErrorContains(t, err, domain.ErrInvalidField.Error())

	def, err := doc.OptionalString("type", "git")
	require.NoError(t, err)
	assert.Equal(t, "git", def)

	list, err := doc.Strings("branches")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, list)

	single, err := doc.Strings("branch")
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, single)

	none, err := doc.Strings("absent")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAsDocument(t *testing.T) {
	doc, err := domain.AsDocument(map[any]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, domain.Document{"a": 1}, doc)

	doc, err = domain.AsDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)

	_, err = domain.AsDocument("scalar")
	assert.Error(t, err)
}

func TestEnvPolicy_Apply(t *testing.T) {
	policy := domain.EnvPolicy{
		ScrubPrefixes: []string{"GIT_"},
		Keep:          []string{"GIT_SSH"},
		Set:           map[string]string{"LC_ALL": "C"},
	}

	env := policy.Apply([]string{
		"PATH=/usr/bin",
		"GIT_DIR=/elsewhere",
		"GIT_WORK_TREE=/tmp",
		"GIT_SSH=/usr/bin/ssh",
		"LC_ALL=de_DE",
		"MALFORMED",
	})

	assert.Equal(t, []string{"PATH=/usr/bin", "GIT_SSH=/usr/bin/ssh", "LC_ALL=C"}, env)
}

func TestVersion(t *testing.T) {
	assert.True(t, domain.Version{}.IsZero())
	assert.False(t, domain.SelfVersion.IsZero())

	v := domain.Version{Type: "git", ID: "0123456789abcdef0123"}
	assert.Equal(t, "0123456789ab", v.Short())
	assert.Equal(t, "<unlocked>", domain.Version{}.String())
}

func TestRemote_String(t *testing.T) {
	assert.Equal(t, "git:https://example.com/x.git", domain.Remote{Type: "git", Location: "https://example.com/x.git"}.String())
	assert.Equal(t, "self", domain.SelfRemote.String())
}
