// Package check compares scanned flag usage against declared configuration.
package check

import "github.com/safeflag/safeflag/internal/domain"

// Check produces a consistency report for one verification run.
//
// MissingInConfig keeps the order flags were first discovered during the
// scan; UnusedInSource keeps configuration declaration order. Unused flags
// are advisory and never fail the check.
func Check(usage *domain.UsageMap, flags *domain.FlagSet) *domain.ConsistencyReport {
	report := &domain.ConsistencyReport{}

	for _, name := range usage.Names() {
		if !flags.Has(name) {
			report.MissingInConfig = append(report.MissingInConfig, name)
		}
	}

	for _, name := range flags.Names() {
		if !usage.Has(name) {
			report.UnusedInSource = append(report.UnusedInSource, name)
		}
	}

	report.Passed = len(report.MissingInConfig) == 0
	return report
}
