package application

import (
	"github.com/safeflag/safeflag/internal/domain"
	"github.com/safeflag/safeflag/internal/domain/audit"
)

// AuditService diffs the working repository against a base branch and
// reports changes that can break callers at deploy time.
type AuditService struct {
	git domain.GitInfo
}

func NewAuditService(git domain.GitInfo) *AuditService {
	return &AuditService{git: git}
}

// Audit analyzes the diff of HEAD against base for the repository at path.
// Findings are advisory; only a failure to produce the diff is an error.
func (s *AuditService) Audit(path, base string) (*domain.AuditReport, error) {
	diff, err := s.git.DiffAgainst(path, base)
	if err != nil {
		return nil, err
	}

	findings := audit.Analyze(diff)
	return &domain.AuditReport{
		Base:     base,
		Findings: findings,
		Clean:    len(findings) == 0,
	}, nil
}
