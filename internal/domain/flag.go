package domain

import (
	"fmt"
	"time"
)

// FlagConfig holds the declared rollout settings for a single feature flag.
//
// An empty Environments list means the flag carries no environment
// restriction at all; restricting to zero environments is not expressible
// (disable the flag instead).
type FlagConfig struct {
	Enabled           bool       `json:"enabled"`
	Environments      []string   `json:"environments,omitempty"`
	RolloutPercentage int        `json:"rollout_percentage"`
	EnabledSubjects   []string   `json:"enabled_subjects,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
}

// DefaultFlagConfig returns the config used for fields absent from a flag's
// declaration: disabled, 0% rollout, no restrictions.
func DefaultFlagConfig() FlagConfig {
	return FlagConfig{}
}

// Validate checks the invariants that the loader must enforce before a
// config reaches the rollout gate.
func (c FlagConfig) Validate() error {
	if c.RolloutPercentage < 0 || c.RolloutPercentage > 100 {
		return fmt.Errorf("rollout_percentage %d is outside [0,100]", c.RolloutPercentage)
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return fmt.Errorf("end_date %s is before start_date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	return nil
}

// AllowsEnvironment reports whether the flag may be active in env.
func (c FlagConfig) AllowsEnvironment(env string) bool {
	if len(c.Environments) == 0 {
		return true
	}
	for _, e := range c.Environments {
		if e == env {
			return true
		}
	}
	return false
}

// AllowsSubject reports whether subjectID is on the explicit allow-list.
func (c FlagConfig) AllowsSubject(subjectID string) bool {
	for _, s := range c.EnabledSubjects {
		if s == subjectID {
			return true
		}
	}
	return false
}

// InWindow reports whether now falls inside the flag's activation window.
// Unset bounds are open.
func (c FlagConfig) InWindow(now time.Time) bool {
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// FlagSet is the normalized in-memory model of a flag configuration
// document. It preserves declaration order, which diagnostics depend on.
type FlagSet struct {
	names   []string
	configs map[string]FlagConfig
}

// NewFlagSet returns an empty FlagSet.
func NewFlagSet() *FlagSet {
	return &FlagSet{configs: make(map[string]FlagConfig)}
}

// Add declares a flag. Re-declaring a name overwrites its config but keeps
// its original position.
func (fs *FlagSet) Add(name string, cfg FlagConfig) {
	if _, ok := fs.configs[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.configs[name] = cfg
}

// Get returns the config for name and whether it is declared.
func (fs *FlagSet) Get(name string) (FlagConfig, bool) {
	cfg, ok := fs.configs[name]
	return cfg, ok
}

// Has reports whether name is declared.
func (fs *FlagSet) Has(name string) bool {
	_, ok := fs.configs[name]
	return ok
}

// Names returns the flag names in declaration order.
func (fs *FlagSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

// Len returns the number of declared flags.
func (fs *FlagSet) Len() int {
	return len(fs.names)
}
