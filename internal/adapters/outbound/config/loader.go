// Package config loads the declarative feature-flag configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/safeflag/safeflag/internal/domain"
)

// flagEntrySchema constrains the shape of a single flag's configuration
// object. additionalProperties is off so typos in field names are caught at
// load time instead of silently defaulting.
const flagEntrySchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"enabled":            {"type": "boolean"},
		"environments":       {"type": "array", "items": {"type": "string"}},
		"rollout_percentage": {"type": "integer", "minimum": 0, "maximum": 100},
		"rolloutPercentage":  {"type": "integer", "minimum": 0, "maximum": 100},
		"enabled_users":      {"type": "array", "items": {"type": "string"}},
		"enabledSubjects":    {"type": "array", "items": {"type": "string"}},
		"start_date":         {"type": ["string", "null"]},
		"startDate":          {"type": ["string", "null"]},
		"end_date":           {"type": ["string", "null"]},
		"endDate":            {"type": ["string", "null"]}
	}
}`

var entrySchema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(flagEntrySchema))
	if err != nil {
		panic(err)
	}
	return s
}

// Loader implements domain.ConfigLoader for YAML and JSON documents. Both
// serializations go through the same YAML parser (YAML 1.2 is a superset of
// JSON), so equivalent documents normalize to identical flag sets.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads and normalizes the flag configuration at path.
//
// Every top-level key is a flag name mapped to its configuration object.
// Fields absent from an entry take the documented defaults (disabled, 0%,
// no restrictions). Returns domain.ErrConfigNotFound, *domain.ParseError or
// *domain.ValidationError on failure; validation reports all offending
// flags in one error.
func (l *Loader) Load(path string) (*domain.FlagSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	if len(root.Content) == 0 {
		return domain.NewFlagSet(), nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &domain.ParseError{Path: path, Err: errors.New("top level must be a mapping of flag names")}
	}

	flags := domain.NewFlagSet()
	verr := &domain.ValidationError{Path: path}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		if name == "" {
			verr.Problems = append(verr.Problems, domain.FlagProblem{
				Flag:    "(empty)",
				Message: "flag name must be a non-empty string",
			})
			continue
		}

		cfg, problems := decodeEntry(doc.Content[i+1])
		if len(problems) > 0 {
			for _, msg := range problems {
				verr.Problems = append(verr.Problems, domain.FlagProblem{Flag: name, Message: msg})
			}
			continue
		}
		flags.Add(name, cfg)
	}

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return flags, nil
}

// flagEntry is the raw serialized form of one flag, with the snake_case and
// camelCase spellings both accepted.
type flagEntry struct {
	Enabled            *bool    `yaml:"enabled"`
	Environments       []string `yaml:"environments"`
	RolloutPercent     *int     `yaml:"rollout_percentage"`
	RolloutPercentAlt  *int     `yaml:"rolloutPercentage"`
	EnabledUsers       []string `yaml:"enabled_users"`
	EnabledSubjects    []string `yaml:"enabledSubjects"`
	StartDate          *string  `yaml:"start_date"`
	StartDateAlt       *string  `yaml:"startDate"`
	EndDate            *string  `yaml:"end_date"`
	EndDateAlt         *string  `yaml:"endDate"`
}

func decodeEntry(node *yaml.Node) (domain.FlagConfig, []string) {
	// A bare key with no value declares a flag with all defaults.
	if node.Kind == 0 || node.Tag == "!!null" {
		return domain.DefaultFlagConfig(), nil
	}

	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return domain.FlagConfig{}, []string{err.Error()}
	}

	result, err := entrySchema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return domain.FlagConfig{}, []string{err.Error()}
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return domain.FlagConfig{}, msgs
	}

	var entry flagEntry
	if err := node.Decode(&entry); err != nil {
		return domain.FlagConfig{}, []string{err.Error()}
	}

	cfg := domain.DefaultFlagConfig()
	var problems []string

	if entry.Enabled != nil {
		cfg.Enabled = *entry.Enabled
	}
	cfg.Environments = entry.Environments

	switch {
	case entry.RolloutPercent != nil && entry.RolloutPercentAlt != nil:
		problems = append(problems, "rollout_percentage specified twice (snake_case and camelCase)")
	case entry.RolloutPercent != nil:
		cfg.RolloutPercentage = *entry.RolloutPercent
	case entry.RolloutPercentAlt != nil:
		cfg.RolloutPercentage = *entry.RolloutPercentAlt
	}

	switch {
	case entry.EnabledUsers != nil && entry.EnabledSubjects != nil:
		problems = append(problems, "enabled_users specified twice (snake_case and camelCase)")
	case entry.EnabledUsers != nil:
		cfg.EnabledSubjects = entry.EnabledUsers
	case entry.EnabledSubjects != nil:
		cfg.EnabledSubjects = entry.EnabledSubjects
	}

	cfg.StartDate, problems = parseDate("start_date", entry.StartDate, entry.StartDateAlt, problems)
	cfg.EndDate, problems = parseDate("end_date", entry.EndDate, entry.EndDateAlt, problems)

	if err := cfg.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	return cfg, problems
}

// parseDate accepts date-only (2006-01-02) and RFC3339 timestamps.
func parseDate(field string, snake, camel *string, problems []string) (*time.Time, []string) {
	if snake != nil && camel != nil {
		return nil, append(problems, fmt.Sprintf("%s specified twice (snake_case and camelCase)", field))
	}
	val := snake
	if val == nil {
		val = camel
	}
	if val == nil || *val == "" {
		return nil, problems
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *val); err == nil {
			return &t, problems
		}
	}
	return nil, append(problems, fmt.Sprintf("%s %q is not a date (want 2006-01-02 or RFC3339)", field, *val))
}
