package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeflag/safeflag/internal/adapters/outbound/scanner"
	"github.com/safeflag/safeflag/internal/domain"
)

const fixtureSrc = "../../../../testdata/webshop/src"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFlagScanner_FindsAllCallShapes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", `if (flags.isEnabled('promo_banner')) {}`)
	writeFile(t, dir, "b.py", `if flags.is_enabled('dark_mode'):`)
	writeFile(t, dir, "c.ts", `if (flags.check("checkout_v2")) {}`)

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ScannedFiles)
	assert.True(t, result.Usage.Has("promo_banner"))
	assert.True(t, result.Usage.Has("dark_mode"))
	assert.True(t, result.Usage.Has("checkout_v2"))
}

func TestFlagScanner_RecordsFileLineAndPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", "const x = 1;\nconst y = 2;\nif (flags.isEnabled('promo_banner')) {}\n")

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	sites := result.Usage.Sites("promo_banner")
	require.Len(t, sites, 1)
	assert.Equal(t, domain.UsageSite{File: "app.js", Line: 3, Pattern: "isEnabled"}, sites[0])
}

func TestFlagScanner_AccumulatesSitesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", `flags.isEnabled('shared_flag')`)
	writeFile(t, dir, "sub/b.js", `flags.isEnabled('shared_flag')`)
	writeFile(t, dir, "sub/c.py", `flags.is_enabled('shared_flag')`)

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	sites := result.Usage.Sites("shared_flag")
	require.Len(t, sites, 3)
	// Sorted by file then line regardless of traversal order.
	assert.Equal(t, "a.js", sites[0].File)
	assert.Equal(t, "sub/b.js", sites[1].File)
	assert.Equal(t, "sub/c.py", sites[2].File)
}

func TestFlagScanner_SkipsDependencyAndVCSDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", `flags.isEnabled('real_flag')`)
	writeFile(t, dir, "node_modules/lib.js", `flags.isEnabled('vendored_flag')`)
	writeFile(t, dir, ".git/hook.js", `flags.isEnabled('hook_flag')`)
	writeFile(t, dir, "dist/bundle.js", `flags.isEnabled('bundled_flag')`)

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.True(t, result.Usage.Has("real_flag"))
	assert.False(t, result.Usage.Has("vendored_flag"))
	assert.False(t, result.Usage.Has("hook_flag"))
	assert.False(t, result.Usage.Has("bundled_flag"))
}

func TestFlagScanner_CustomExcludeDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", `flags.isEnabled('kept')`)
	writeFile(t, dir, "generated/gen.js", `flags.isEnabled('generated')`)

	s := scanner.New(scanner.WithExcludeDirs("generated"))
	result, err := s.Scan(dir)
	require.NoError(t, err)

	assert.True(t, result.Usage.Has("kept"))
	assert.False(t, result.Usage.Has("generated"))
}

func TestFlagScanner_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", `flags.isEnabled('js_flag')`)
	writeFile(t, dir, "notes.txt", `flags.isEnabled('txt_flag')`)

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.True(t, result.Usage.Has("js_flag"))
	assert.False(t, result.Usage.Has("txt_flag"))

	s := scanner.New(scanner.WithExtensions("txt"))
	result, err = s.Scan(dir)
	require.NoError(t, err)
	assert.True(t, result.Usage.Has("txt_flag"))
	assert.False(t, result.Usage.Has("js_flag"))
}

func TestFlagScanner_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", `flags.isEnabled('real_flag')`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.js"),
		[]byte("flags.isEnabled('bin_flag')\x00\x01\x02"), 0644))

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.True(t, result.Usage.Has("real_flag"))
	assert.False(t, result.Usage.Has("bin_flag"))
	assert.Equal(t, 1, result.SkippedFiles)
	assert.Equal(t, 1, result.ScannedFiles)
}

func TestFlagScanner_UnreadableFileDoesNotAbort(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "ok.js", `flags.isEnabled('ok_flag')`)
	locked := filepath.Join(dir, "locked.js")
	require.NoError(t, os.WriteFile(locked, []byte(`flags.isEnabled('locked_flag')`), 0000))

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.True(t, result.Usage.Has("ok_flag"))
	assert.False(t, result.Usage.Has("locked_flag"))
	assert.Equal(t, 1, result.SkippedFiles)
}

func TestFlagScanner_MissingRootFails(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFlagScanner_CustomCallPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.go", `if gate.Active("go_flag") {}`)

	s := scanner.New(scanner.WithCallPatterns("Active"))
	result, err := s.Scan(dir)
	require.NoError(t, err)

	require.True(t, result.Usage.Has("go_flag"))
	assert.Equal(t, "Active", result.Usage.Sites("go_flag")[0].Pattern)
}

func TestFlagScanner_WebshopFixture(t *testing.T) {
	result, err := scanner.New().Scan(fixtureSrc)
	require.NoError(t, err)

	for _, name := range []string{"promo_banner", "dark_mode", "checkout_v2", "legacy_search"} {
		assert.True(t, result.Usage.Has(name), "should find %s", name)
	}
	assert.Equal(t, 0, result.SkippedFiles)
}
