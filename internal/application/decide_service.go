package application

import (
	"fmt"
	"time"

	"github.com/safeflag/safeflag/internal/domain"
	"github.com/safeflag/safeflag/internal/domain/rollout"
)

// DecideService loads a flag configuration and evaluates the rollout gate
// for a single subject.
type DecideService struct {
	loader domain.ConfigLoader
}

func NewDecideService(loader domain.ConfigLoader) *DecideService {
	return &DecideService{loader: loader}
}

// Decide evaluates flagName for subjectID in environment at the given time.
// The flag must be declared; gate evaluation itself cannot fail.
func (s *DecideService) Decide(configPath, flagName, subjectID, environment string, at time.Time) (domain.Decision, error) {
	flags, err := s.loader.Load(configPath)
	if err != nil {
		return domain.Decision{}, err
	}

	cfg, ok := flags.Get(flagName)
	if !ok {
		return domain.Decision{}, fmt.Errorf("flag %q is not declared in %s", flagName, configPath)
	}

	return rollout.Explain(cfg, flagName, subjectID, environment, at), nil
}
