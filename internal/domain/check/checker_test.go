package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeflag/safeflag/internal/domain"
	"github.com/safeflag/safeflag/internal/domain/check"
)

func usageOf(names ...string) *domain.UsageMap {
	u := domain.NewUsageMap()
	for i, n := range names {
		u.Add(n, domain.UsageSite{File: "app.js", Line: i + 1, Pattern: "isEnabled"})
	}
	return u
}

func flagsOf(names ...string) *domain.FlagSet {
	fs := domain.NewFlagSet()
	for _, n := range names {
		fs.Add(n, domain.FlagConfig{Enabled: true})
	}
	return fs
}

func TestCheck_AllDeclared(t *testing.T) {
	report := check.Check(usageOf("a", "b"), flagsOf("a", "b"))

	assert.True(t, report.Passed)
	assert.Empty(t, report.MissingInConfig)
	assert.Empty(t, report.UnusedInSource)
}

func TestCheck_MissingFlagFails(t *testing.T) {
	// Source references promo_banner and dark_mode; only promo_banner is
	// declared.
	report := check.Check(usageOf("promo_banner", "dark_mode"), flagsOf("promo_banner"))

	assert.False(t, report.Passed)
	assert.Equal(t, []string{"dark_mode"}, report.MissingInConfig)
	assert.Empty(t, report.UnusedInSource)
}

func TestCheck_UnusedIsAdvisoryOnly(t *testing.T) {
	report := check.Check(usageOf("a"), flagsOf("a", "stale_flag"))

	assert.True(t, report.Passed, "unused flags must not fail the check")
	assert.Equal(t, []string{"stale_flag"}, report.UnusedInSource)
}

func TestCheck_MissingKeepsDiscoveryOrder(t *testing.T) {
	report := check.Check(usageOf("zeta", "alpha", "mid"), flagsOf())

	require.False(t, report.Passed)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, report.MissingInConfig)
}

func TestCheck_UnusedKeepsDeclarationOrder(t *testing.T) {
	report := check.Check(usageOf(), flagsOf("zeta", "alpha", "mid"))

	assert.True(t, report.Passed)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, report.UnusedInSource)
}

func TestCheck_EmptyInputs(t *testing.T) {
	report := check.Check(usageOf(), flagsOf())

	assert.True(t, report.Passed)
	assert.Empty(t, report.MissingInConfig)
	assert.Empty(t, report.UnusedInSource)
}
