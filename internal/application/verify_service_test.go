package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configloader "github.com/safeflag/safeflag/internal/adapters/outbound/config"
	"github.com/safeflag/safeflag/internal/adapters/outbound/gitinfo"
	"github.com/safeflag/safeflag/internal/adapters/outbound/scanner"
	"github.com/safeflag/safeflag/internal/application"
)

func newVerifyService() *application.VerifyService {
	return application.NewVerifyService(scanner.New(), configloader.New(), gitinfo.New())
}

func TestVerifyService_WebshopPasses(t *testing.T) {
	svc := newVerifyService()
	report, err := svc.Verify("../../testdata/webshop/src", "../../testdata/webshop/feature-flags.yml")
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Empty(t, report.MissingInConfig)
	assert.Empty(t, report.UnusedInSource)
	assert.Equal(t, 4, report.FlagsInConfig)
	assert.Equal(t, 4, report.FlagsInSource)
	assert.Equal(t, 3, report.ScannedFiles)
}

func TestVerifyService_DriftedFails(t *testing.T) {
	svc := newVerifyService()
	report, err := svc.Verify("../../testdata/drifted/src", "../../testdata/drifted/feature-flags.yml")
	require.NoError(t, err)

	assert.False(t, report.Passed)
	assert.Equal(t, []string{"dark_mode"}, report.MissingInConfig)

	sites := report.MissingSites["dark_mode"]
	require.Len(t, sites, 1)
	assert.Equal(t, "theme.py", sites[0].File)
	assert.Equal(t, "is_enabled", sites[0].Pattern)
}

func TestVerifyService_UnusedIsAdvisory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.js"),
		[]byte(`flags.isEnabled('used_flag')`), 0644))

	cfgPath := filepath.Join(dir, "feature-flags.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("used_flag:\nstale_flag:\n"), 0644))

	report, err := newVerifyService().Verify(src, cfgPath)
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Equal(t, []string{"stale_flag"}, report.UnusedInSource)
}

func TestVerifyService_ConfigErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := newVerifyService().Verify(dir, filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestVerifyService_NamingWarningsAttached(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.js"),
		[]byte(`flags.isEnabled('promo_banner'); flags.isEnabled('darkMode_v2')`), 0644))

	cfgPath := filepath.Join(dir, "feature-flags.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("promo_banner:\ndarkMode_v2:\n"), 0644))

	report, err := newVerifyService().Verify(src, cfgPath)
	require.NoError(t, err)

	require.Len(t, report.NamingWarnings, 1)
	assert.Equal(t, "darkMode_v2", report.NamingWarnings[0].Flag)
}
