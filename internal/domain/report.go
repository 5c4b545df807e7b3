package domain

import "time"

// ConsistencyReport is the immutable result of comparing scanned usage
// against declared configuration.
type ConsistencyReport struct {
	MissingInConfig []string `json:"missing_in_config"`
	UnusedInSource  []string `json:"unused_in_source"`
	Passed          bool     `json:"passed"`
}

// NamingWarning flags a naming-convention inconsistency in a flag name.
// Advisory only; never affects whether a verification passes.
type NamingWarning struct {
	Flag    string `json:"flag"`
	Message string `json:"message"`
}

// VerifyReport is the full result of one verification run.
type VerifyReport struct {
	ConsistencyReport

	SourcePath     string                 `json:"source_path"`
	ConfigPath     string                 `json:"config_path"`
	ScannedFiles   int                    `json:"scanned_files"`
	SkippedFiles   int                    `json:"skipped_files"`
	FlagsInConfig  int                    `json:"flags_in_config"`
	FlagsInSource  int                    `json:"flags_in_source"`
	MissingSites   map[string][]UsageSite `json:"missing_sites,omitempty"`
	NamingWarnings []NamingWarning        `json:"naming_warnings,omitempty"`
	CommitHash     string                 `json:"commit_hash,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

// Decision explains a rollout gate evaluation for one subject. Bucket is
// set only when the percentage rule was reached; a pointer keeps bucket 0
// distinguishable from "not computed" in JSON output.
type Decision struct {
	Flag        string `json:"flag"`
	SubjectID   string `json:"subject_id"`
	Environment string `json:"environment,omitempty"`
	Enabled     bool   `json:"enabled"`
	Reason      string `json:"reason"`
	Bucket      *int   `json:"bucket,omitempty"`
}

// Decision reasons, in gate precedence order.
const (
	ReasonKillSwitch    = "kill_switch"
	ReasonEnvironment   = "environment_excluded"
	ReasonOutsideWindow = "outside_window"
	ReasonAllowList     = "allow_list"
	ReasonBucket        = "percentage_bucket"
)

// AuditFinding is one change in a diff that can break existing callers.
type AuditFinding struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Removed string `json:"removed"`
	Added   string `json:"added"`
}

// AuditReport summarizes a git safety audit of HEAD against a base branch.
type AuditReport struct {
	Base     string         `json:"base"`
	Findings []AuditFinding `json:"findings,omitempty"`
	Clean    bool           `json:"clean"`
}

// RunEntry is one line of verification history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Passed     bool   `json:"passed"`
	Missing    int    `json:"missing"`
	Unused     int    `json:"unused"`
}
