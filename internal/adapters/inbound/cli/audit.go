package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safeflag/safeflag/internal/adapters/outbound/gitinfo"
	"github.com/safeflag/safeflag/internal/adapters/outbound/tui"
	"github.com/safeflag/safeflag/internal/application"
)

func newAuditCmd() *cobra.Command {
	var (
		repoPath   string
		base       string
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit git changes for destructive patterns",
		Long: "Diff HEAD against a base branch and flag call signatures that " +
			"gained parameters without default values. Those changes break every " +
			"existing call site at once, which no flag can roll back.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewAuditService(gitinfo.New())
			report, err := svc.Audit(repoPath, base)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAuditReport(report))
			}

			if strict && !report.Clean {
				return fmt.Errorf("strict mode: %d potential destructive change(s)", len(report.Findings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "path", ".", "Repository path")
	cmd.Flags().StringVar(&base, "base", "main", "Base branch to diff against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when findings exist")

	return cmd
}
