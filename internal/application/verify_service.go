package application

import (
	"fmt"
	"time"

	"github.com/safeflag/safeflag/internal/domain"
	"github.com/safeflag/safeflag/internal/domain/check"
)

// VerifyService orchestrates the verification pipeline:
// load config -> scan sources -> check consistency -> lint naming.
type VerifyService struct {
	scanner domain.UsageScanner
	loader  domain.ConfigLoader
	git     domain.GitInfo
}

func NewVerifyService(
	scanner domain.UsageScanner,
	loader domain.ConfigLoader,
	git domain.GitInfo,
) *VerifyService {
	return &VerifyService{
		scanner: scanner,
		loader:  loader,
		git:     git,
	}
}

// Verify runs one full verification of sourcePath against configPath.
// Config errors are fatal; unreadable source files are not (the scanner
// skips and counts them).
func (s *VerifyService) Verify(sourcePath, configPath string) (*domain.VerifyReport, error) {
	flags, err := s.loader.Load(configPath)
	if err != nil {
		return nil, err
	}

	scan, err := s.scanner.Scan(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("scanning sources: %w", err)
	}

	consistency := check.Check(scan.Usage, flags)

	report := &domain.VerifyReport{
		ConsistencyReport: *consistency,
		SourcePath:        sourcePath,
		ConfigPath:        configPath,
		ScannedFiles:      scan.ScannedFiles,
		SkippedFiles:      scan.SkippedFiles,
		FlagsInConfig:     flags.Len(),
		FlagsInSource:     scan.Usage.Len(),
		NamingWarnings:    check.LintNames(flags.Names()),
		Timestamp:         time.Now(),
	}

	if len(consistency.MissingInConfig) > 0 {
		report.MissingSites = make(map[string][]domain.UsageSite, len(consistency.MissingInConfig))
		for _, name := range consistency.MissingInConfig {
			report.MissingSites[name] = scan.Usage.Sites(name)
		}
	}

	// Commit hash is best-effort metadata.
	if s.git != nil && s.git.IsGitRepo(scan.RootPath) {
		if hash, err := s.git.CommitHash(scan.RootPath); err == nil {
			report.CommitHash = hash
		}
	}

	return report, nil
}
