// Package rollout implements the deterministic percentage gate that decides
// whether a subject is enrolled in a flag's gradual rollout.
package rollout

import (
	"hash/fnv"
	"time"

	"github.com/safeflag/safeflag/internal/domain"
)

// Bucket maps a subject identifier to a stable bucket in [0,100).
//
// The hash is FNV-1a 64-bit over the raw subject bytes, reduced mod 100.
// This is a versioned contract: the same subject must land in the same
// bucket across runs and platforms so assignment stays sticky, and changing
// the algorithm reshuffles every subject's bucket.
func Bucket(subjectID string) int {
	h := fnv.New64a()
	h.Write([]byte(subjectID))
	return int(h.Sum64() % 100)
}

// Decide evaluates cfg for one subject. Rules are checked in strict
// precedence order; the first matching rule wins:
//
//  1. kill switch off
//  2. environment not allowed
//  3. outside the activation window
//  4. subject on the allow-list
//  5. percentage bucket
//
// Decide assumes cfg was validated at load time and is total: it always
// returns a boolean.
func Decide(cfg domain.FlagConfig, subjectID, environment string, now time.Time) bool {
	return Explain(cfg, "", subjectID, environment, now).Enabled
}

// Explain is Decide with its reasoning attached, for CLI and MCP output.
func Explain(cfg domain.FlagConfig, flagName, subjectID, environment string, now time.Time) domain.Decision {
	d := domain.Decision{
		Flag:        flagName,
		SubjectID:   subjectID,
		Environment: environment,
	}

	if !cfg.Enabled {
		d.Reason = domain.ReasonKillSwitch
		return d
	}

	if !cfg.AllowsEnvironment(environment) {
		d.Reason = domain.ReasonEnvironment
		return d
	}

	if !cfg.InWindow(now) {
		d.Reason = domain.ReasonOutsideWindow
		return d
	}

	if cfg.AllowsSubject(subjectID) {
		d.Enabled = true
		d.Reason = domain.ReasonAllowList
		return d
	}

	bucket := Bucket(subjectID)
	d.Bucket = &bucket
	d.Enabled = bucket < cfg.RolloutPercentage
	d.Reason = domain.ReasonBucket
	return d
}
