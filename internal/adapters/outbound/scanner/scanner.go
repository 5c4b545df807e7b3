// Package scanner extracts feature-flag references from a source tree.
package scanner

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/safeflag/safeflag/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	"bin":          true,
	"testdata":     true,
}

// defaultCallPatterns are the recognized flag-check call names. Each one
// matches `<name>('flag')` or `<name>("flag")`.
var defaultCallPatterns = []string{"isEnabled", "is_enabled", "check"}

// defaultExtensions are the file extensions visited by default.
var defaultExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".py", ".go", ".rs"}

// FlagScanner implements domain.UsageScanner by walking the filesystem and
// matching recognized flag-check call shapes against file contents.
type FlagScanner struct {
	callPatterns []string
	extensions   map[string]bool
	extraSkip    map[string]bool
	re           *regexp.Regexp
}

// Option customizes a FlagScanner.
type Option func(*FlagScanner)

// WithCallPatterns replaces the recognized call names. New conventions are
// added here, not by touching scanner internals.
func WithCallPatterns(names ...string) Option {
	return func(s *FlagScanner) { s.callPatterns = names }
}

// WithExtensions replaces the visited file extensions.
func WithExtensions(exts ...string) Option {
	return func(s *FlagScanner) {
		s.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			s.extensions[e] = true
		}
	}
}

// WithExcludeDirs skips additional directory names during traversal.
func WithExcludeDirs(dirs ...string) Option {
	return func(s *FlagScanner) {
		for _, d := range dirs {
			s.extraSkip[strings.TrimSuffix(d, "/")] = true
		}
	}
}

// New creates a FlagScanner with the default call patterns and extensions.
func New(opts ...Option) *FlagScanner {
	s := &FlagScanner{
		callPatterns: defaultCallPatterns,
		extraSkip:    make(map[string]bool),
	}
	WithExtensions(defaultExtensions...)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.re = compilePatterns(s.callPatterns)
	return s
}

// compilePatterns builds one regexp matching any recognized call name
// followed by a single-quoted or double-quoted string literal argument.
func compilePatterns(names []string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	expr := fmt.Sprintf(`\b(%s)\(\s*(?:'([^'\n]+)'|"([^"\n]+)")`, strings.Join(quoted, "|"))
	return regexp.MustCompile(expr)
}

// Scan walks rootPath and returns every flag reference found, keyed by flag
// name in first-discovery order. Unreadable and binary files are skipped
// with a warning; one bad file never aborts the scan. The tree is never
// modified.
func (s *FlagScanner) Scan(rootPath string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rootPath, err)
	}

	result := &domain.ScanResult{
		RootPath: absPath,
		Usage:    domain.NewUsageMap(),
	}

	err = filepath.WalkDir(absPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absPath {
				return err
			}
			log.WithError(err).Warnf("skipping %s", path)
			return nil
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || s.extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.extensions[filepath.Ext(d.Name())] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).Warnf("skipping unreadable file %s", path)
			result.SkippedFiles++
			return nil
		}
		if bytes.IndexByte(data, 0) >= 0 {
			log.Warnf("skipping binary file %s", path)
			result.SkippedFiles++
			return nil
		}

		result.ScannedFiles++
		relPath, _ := filepath.Rel(absPath, path)
		s.scanFile(filepath.ToSlash(relPath), data, result.Usage)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Usage.SortSites()
	return result, nil
}

// scanFile records every non-overlapping match in one file.
func (s *FlagScanner) scanFile(relPath string, data []byte, usage *domain.UsageMap) {
	matches := s.re.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return
	}

	lineStarts := buildLineIndex(data)
	for _, m := range matches {
		pattern := string(data[m[2]:m[3]])

		// The flag name is in whichever quote group matched.
		var name string
		if m[4] >= 0 {
			name = string(data[m[4]:m[5]])
		} else if m[6] >= 0 {
			name = string(data[m[6]:m[7]])
		}
		if name == "" {
			continue
		}

		usage.Add(name, domain.UsageSite{
			File:    relPath,
			Line:    lineOf(lineStarts, m[0]),
			Pattern: pattern,
		})
	}
}

// buildLineIndex returns the byte offset of each line start.
func buildLineIndex(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf converts a byte offset to a 1-based line number.
func lineOf(lineStarts []int, offset int) int {
	return sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > offset
	})
}
