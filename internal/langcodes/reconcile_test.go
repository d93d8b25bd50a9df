package langcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves from a fixed table, standing in for the external
// code-resolution service.
type stubResolver map[string]string

func (s stubResolver) Resolve(tag string) (string, bool) {
	code, ok := s[tag]
	return code, ok
}

func TestBuildCodeMapOverridesTakePrecedence(t *testing.T) {
	supported := CodeSet([]string{"ar", "sw"})
	// The resolver would map arb elsewhere; the override must win.
	resolver := stubResolver{"arb": "zz"}
	overrides := map[string]string{"arb": "ar"}

	m := BuildCodeMap([]string{"arb"}, supported, resolver, overrides)

	require.Len(t, m, 1)
	assert.Equal(t, "ar", m["arb"])
}

func TestBuildCodeMapOverrideWithUnsupportedTargetDropsTag(t *testing.T) {
	supported := CodeSet([]string{"ar"})
	// Even though the resolver could map gaz to a supported code, an
	// override is never re-checked against the resolver.
	resolver := stubResolver{"gaz": "ar"}
	overrides := map[string]string{"gaz": "om"}

	m := BuildCodeMap([]string{"gaz"}, supported, resolver, overrides)

	assert.Empty(t, m)
}

func TestBuildCodeMapResolverPath(t *testing.T) {
	supported := CodeSet([]string{"en", "de"})
	resolver := stubResolver{"eng": "en", "deu": "de", "fra": "fr"}

	m := BuildCodeMap([]string{"eng", "deu", "fra", "xyz"}, supported, resolver, nil)

	assert.Equal(t, CodeMap{"eng": "en", "deu": "de"}, m)
	_, ok := m["fra"]
	assert.False(t, ok, "resolved but unsupported codes are excluded")
	_, ok = m["xyz"]
	assert.False(t, ok, "unresolvable tags are excluded silently")
}

func TestBuildCodeMapManyToOne(t *testing.T) {
	supported := CodeSet([]string{"ar"})
	overrides := map[string]string{"arb": "ar", "arz": "ar", "ary": "ar"}

	m := BuildCodeMap([]string{"arb", "arz", "ary"}, supported, stubResolver{}, overrides)

	require.Len(t, m, 3)
	for _, tag := range []string{"arb", "arz", "ary"} {
		assert.Equal(t, "ar", m[tag])
	}
}

func TestBuildCodeMapWithDefaultOverridesAndRegistry(t *testing.T) {
	supported := CodeSet([]string{"ar", "sw", "en"})

	m := BuildCodeMap([]string{"arb", "swh", "eng", "xyz"}, supported, ISOResolver{}, DefaultOverrides())

	assert.Equal(t, "ar", m["arb"], "manual override")
	assert.Equal(t, "sw", m["swh"], "manual override for individual language")
	assert.Equal(t, "en", m["eng"], "registry resolution")
	_, ok := m["xyz"]
	assert.False(t, ok)
}
