package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Role_StringAndParse_RoundTrip(t *testing.T) {
	roles := []Role{Guest, Unverified, Normal, Admin}
	for _, r := range roles {
		parsed, err := ParseRole(r.String())
		assert.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func Test_ParseRole_RejectsUnknown(t *testing.T) {
	_, err := ParseRole("superuser")
	assert.Error(t, err)
}

func Test_ItemKind_StringAndParse_RoundTrip(t *testing.T) {
	kinds := []ItemKind{KindAutomaton, KindRegex, KindGrammar}
	for _, k := range kinds {
		parsed, err := ParseItemKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func Test_ParseItemKind_RejectsUnknown(t *testing.T) {
	_, err := ParseItemKind("bogus")
	assert.Error(t, err)
}

func Test_ParseItemKind_CaseInsensitive(t *testing.T) {
	k, err := ParseItemKind("REGEX")
	assert.NoError(t, err)
	assert.Equal(t, KindRegex, k)
}
