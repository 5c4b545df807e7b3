package check

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/safeflag/safeflag/internal/domain"
)

// vagueNames are single-word flag names too generic to tell a reader what
// the flag actually gates.
var vagueNames = map[string]bool{
	"flag": true, "test": true, "temp": true, "new": true,
	"feature": true, "enabled": true, "beta": true, "experiment": true,
}

type nameStyle int

const (
	styleSingle nameStyle = iota
	styleSnake
	styleCamel
	styleMixed
)

// LintNames returns advisory warnings about flag naming: names that mix
// snake_case and camelCase in one identifier, names in the minority style
// when the set leans the other way, and vague single-word names. Warnings
// never fail a verification.
func LintNames(names []string) []domain.NamingWarning {
	var warnings []domain.NamingWarning

	snake, camel := 0, 0
	styles := make(map[string]nameStyle, len(names))
	for _, name := range names {
		s := classify(name)
		styles[name] = s
		switch s {
		case styleSnake:
			snake++
		case styleCamel:
			camel++
		}
	}

	for _, name := range names {
		switch styles[name] {
		case styleMixed:
			warnings = append(warnings, domain.NamingWarning{
				Flag:    name,
				Message: "mixes snake_case and camelCase in one name",
			})
		case styleSnake:
			if camel > snake {
				warnings = append(warnings, domain.NamingWarning{
					Flag:    name,
					Message: fmt.Sprintf("uses snake_case while %d of %d flags use camelCase", camel, len(names)),
				})
			}
		case styleCamel:
			if snake > camel {
				warnings = append(warnings, domain.NamingWarning{
					Flag:    name,
					Message: fmt.Sprintf("uses camelCase while %d of %d flags use snake_case", snake, len(names)),
				})
			}
		case styleSingle:
			if vagueNames[strings.ToLower(name)] {
				warnings = append(warnings, domain.NamingWarning{
					Flag:    name,
					Message: "name is too generic to identify what it gates",
				})
			}
		}
	}

	return warnings
}

func classify(name string) nameStyle {
	hasUnderscore := strings.Contains(name, "_")
	hasUpper := strings.ContainsFunc(name, unicode.IsUpper)

	switch {
	case hasUnderscore && hasUpper:
		return styleMixed
	case hasUnderscore:
		return styleSnake
	case hasUpper && len(camelcase.Split(name)) > 1:
		return styleCamel
	default:
		return styleSingle
	}
}
