package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeflag/safeflag/internal/domain/check"
)

func TestLintNames_ConsistentSnakeCaseIsClean(t *testing.T) {
	warnings := check.LintNames([]string{"promo_banner", "dark_mode", "checkout_v2"})
	assert.Empty(t, warnings)
}

func TestLintNames_MixedStyleInOneName(t *testing.T) {
	warnings := check.LintNames([]string{"promoBanner_v2"})
	require.Len(t, warnings, 1)
	assert.Equal(t, "promoBanner_v2", warnings[0].Flag)
	assert.Contains(t, warnings[0].Message, "mixes")
}

func TestLintNames_MinorityStyleWarned(t *testing.T) {
	warnings := check.LintNames([]string{"promo_banner", "dark_mode", "newCheckout"})
	require.Len(t, warnings, 1)
	assert.Equal(t, "newCheckout", warnings[0].Flag)
	assert.Contains(t, warnings[0].Message, "camelCase")
}

func TestLintNames_VagueSingleWord(t *testing.T) {
	warnings := check.LintNames([]string{"beta"})
	require.Len(t, warnings, 1)
	assert.Equal(t, "beta", warnings[0].Flag)
}

func TestLintNames_SpecificSingleWordIsClean(t *testing.T) {
	warnings := check.LintNames([]string{"darkmode"})
	assert.Empty(t, warnings)
}

func TestLintNames_Empty(t *testing.T) {
	assert.Empty(t, check.LintNames(nil))
}
