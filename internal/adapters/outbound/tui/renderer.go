// Package tui renders verification reports and rollout decisions for the
// terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/safeflag/safeflag/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(64)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle    = lipgloss.NewStyle().Foreground(dim)
)

// RenderVerifyReport renders the outcome of one verification run.
func RenderVerifyReport(report *domain.VerifyReport) string {
	var b strings.Builder

	title := headerStyle.Render("safeflag")
	subtitle := dimStyle.Render("flag consistency check")
	var verdict string
	if report.Passed {
		verdict = passStyle.Render("PASS")
	} else {
		verdict = failStyle.Render("FAIL")
	}

	summary := dimStyle.Render(fmt.Sprintf("%d files scanned · %d flags used · %d declared",
		report.ScannedFiles, report.FlagsInSource, report.FlagsInConfig))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + summary))
	b.WriteString("\n")

	if len(report.MissingInConfig) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			sectionStyle.Render("Used in code, missing from config"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.MissingInConfig)))))
		for _, name := range report.MissingInConfig {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), name))
			for _, site := range report.MissingSites[name] {
				b.WriteString("      " + fileStyle.Render(fmt.Sprintf("%s:%d", site.File, site.Line)) +
					"  " + faintStyle.Render(site.Pattern) + "\n")
			}
		}
	}

	if len(report.UnusedInSource) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			sectionStyle.Render("Declared but never referenced"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.UnusedInSource)))))
		for _, name := range report.UnusedInSource {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				warnStyle.Render("●"), name, faintStyle.Render("candidate for cleanup")))
		}
	}

	if len(report.NamingWarnings) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			sectionStyle.Render("Naming"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.NamingWarnings)))))
		for _, w := range report.NamingWarnings {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				warnStyle.Render("●"), w.Flag, dimStyle.Render(w.Message)))
		}
	}

	if report.Passed && len(report.UnusedInSource) == 0 && len(report.NamingWarnings) == 0 {
		b.WriteString("\n  " + passStyle.Render("All flags verified.") + "\n")
	}

	if report.SkippedFiles > 0 {
		b.WriteString("\n  " + dimStyle.Render(fmt.Sprintf("%d unreadable file(s) skipped", report.SkippedFiles)) + "\n")
	}
	if report.CommitHash != "" {
		b.WriteString("  " + faintStyle.Render("commit "+shortHash(report.CommitHash)) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// RenderDecision renders a rollout gate evaluation.
func RenderDecision(d domain.Decision) string {
	var verdict string
	if d.Enabled {
		verdict = passStyle.Render("ENABLED")
	} else {
		verdict = failStyle.Render("DISABLED")
	}

	line := fmt.Sprintf("  %s %s %s %s",
		titleStyle.Render(d.Flag), dimStyle.Render("for"), d.SubjectID, verdict)

	detail := "  " + dimStyle.Render("reason: "+d.Reason)
	if d.Bucket != nil {
		detail += dimStyle.Render(fmt.Sprintf(" (bucket %d)", *d.Bucket))
	}
	if d.Environment != "" {
		detail += dimStyle.Render("  env: " + d.Environment)
	}

	return line + "\n" + detail + "\n"
}

// RenderAuditReport renders a git safety audit.
func RenderAuditReport(report *domain.AuditReport) string {
	var b strings.Builder

	if report.Clean {
		b.WriteString("  " + passStyle.Render("Audit complete.") + "  " +
			dimStyle.Render("No destructive changes against "+report.Base+".") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionStyle.Render("Signatures rewritten without defaults"),
		dimStyle.Render(fmt.Sprintf("(%d, against %s)", len(report.Findings), report.Base))))
	for _, f := range report.Findings {
		b.WriteString("    " + fileStyle.Render(fmt.Sprintf("%s:%d", f.File, f.Line)) + "\n")
		b.WriteString("      " + failStyle.Render("- "+f.Removed) + "\n")
		b.WriteString("      " + passStyle.Render("+ "+f.Added) + "\n")
	}
	b.WriteString("\n  " + warnStyle.Render("Give new parameters default values to stay call-compatible.") + "\n")

	return b.String()
}

// RenderFlagList renders the declared flags with their rollout state.
func RenderFlagList(flags *domain.FlagSet) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%d flag(s) declared", flags.Len())) + "\n\n")

	for _, name := range flags.Names() {
		cfg, _ := flags.Get(name)

		var state string
		switch {
		case !cfg.Enabled:
			state = failStyle.Render("off")
		case cfg.RolloutPercentage >= 100:
			state = passStyle.Render("100%")
		default:
			state = warnStyle.Render(fmt.Sprintf("%d%%", cfg.RolloutPercentage))
		}

		b.WriteString(fmt.Sprintf("  %s %s", state, padRight(name, 28)))

		var notes []string
		if len(cfg.Environments) > 0 {
			notes = append(notes, "envs: "+strings.Join(cfg.Environments, ","))
		}
		if len(cfg.EnabledSubjects) > 0 {
			notes = append(notes, fmt.Sprintf("%d allow-listed", len(cfg.EnabledSubjects)))
		}
		if cfg.StartDate != nil || cfg.EndDate != nil {
			notes = append(notes, "windowed")
		}
		if len(notes) > 0 {
			b.WriteString("  " + dimStyle.Render(strings.Join(notes, "  ")))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// padRight pads by display width, not byte length, so multi-byte flag
// names keep the columns aligned.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
