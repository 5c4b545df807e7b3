// Package audit inspects a git diff for changes that can break callers the
// moment they deploy, independent of any feature flag.
package audit

import (
	"strconv"
	"strings"

	"github.com/safeflag/safeflag/internal/domain"
)

// Analyze scans a unified diff for call signatures rewritten in place: a
// removed line immediately replaced by an added line whose parameter list
// grew without any of the new parameters carrying a default value. Such a
// change breaks every existing call site at once, which is exactly what a
// gradual flag rollout is supposed to prevent.
//
// This is a line-pair heuristic, not a parser; it trades precision for
// working identically across the languages the scanner supports.
func Analyze(diff string) []domain.AuditFinding {
	var findings []domain.AuditFinding

	var file string
	line := 0

	lines := strings.Split(diff, "\n")
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		switch {
		case strings.HasPrefix(l, "+++ b/"):
			file = strings.TrimPrefix(l, "+++ b/")
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			// File headers for added or deleted files.
		case strings.HasPrefix(l, "@@"):
			line = hunkStart(l)
		case strings.HasPrefix(l, "-"):
			if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+") && !strings.HasPrefix(lines[i+1], "+++") {
				if f, ok := signatureShift(l, lines[i+1]); ok {
					f.File = file
					f.Line = line
					findings = append(findings, f)
				}
			}
		default:
			// Added and context lines both occupy a new-file line.
			line++
		}
	}

	return findings
}

// signatureShift reports whether the removed/added pair rewrites a
// parameter list destructively: the list grew and none of it carries a
// default value.
func signatureShift(removed, added string) (domain.AuditFinding, bool) {
	oldParams, ok := params(removed)
	if !ok {
		return domain.AuditFinding{}, false
	}
	newParams, ok := params(added)
	if !ok {
		return domain.AuditFinding{}, false
	}

	if len(newParams) <= len(oldParams) || strings.Contains(newParams, "=") {
		return domain.AuditFinding{}, false
	}

	return domain.AuditFinding{
		Removed: strings.TrimSpace(strings.TrimPrefix(removed, "-")),
		Added:   strings.TrimSpace(strings.TrimPrefix(added, "+")),
	}, true
}

// params extracts the text between the first parenthesis pair on the line.
func params(line string) (string, bool) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return "", false
	}
	end := strings.IndexByte(line[open:], ')')
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(line[open+1 : open+end]), true
}

// hunkStart returns the new-file start line of a "@@ -a,b +c,d @@" header.
func hunkStart(header string) int {
	for _, field := range strings.Fields(header) {
		if !strings.HasPrefix(field, "+") {
			continue
		}
		field = strings.TrimPrefix(field, "+")
		if comma := strings.IndexByte(field, ','); comma >= 0 {
			field = field[:comma]
		}
		if n, err := strconv.Atoi(field); err == nil {
			return n
		}
	}
	return 1
}
