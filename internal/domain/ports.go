package domain

// UsageScanner walks a source tree and collects flag usage sites.
type UsageScanner interface {
	Scan(rootPath string) (*ScanResult, error)
}

// ScanResult holds the outcome of one source scan.
type ScanResult struct {
	RootPath     string
	Usage        *UsageMap
	ScannedFiles int
	SkippedFiles int
}

// ConfigLoader parses a declarative flag configuration document.
type ConfigLoader interface {
	Load(path string) (*FlagSet, error)
}

// GitInfo exposes repository metadata and diffs.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	DiffAgainst(path, base string) (string, error)
}

// RunHistory persists verification run summaries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
