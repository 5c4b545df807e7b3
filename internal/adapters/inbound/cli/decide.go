package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/safeflag/safeflag/internal/adapters/outbound/config"
	"github.com/safeflag/safeflag/internal/adapters/outbound/tui"
	"github.com/safeflag/safeflag/internal/application"
)

func newDecideCmd() *cobra.Command {
	var (
		configPath  string
		subjectID   string
		environment string
		atTime      string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "decide <flag>",
		Short: "Evaluate the rollout gate for one subject",
		Long: "Decide whether a subject is included in a flag's current rollout. " +
			"The same subject always lands in the same percentage bucket, so " +
			"assignment is sticky across runs.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if atTime != "" {
				parsed, err := time.Parse(time.RFC3339, atTime)
				if err != nil {
					return fmt.Errorf("parsing --at: %w", err)
				}
				now = parsed
			}

			svc := application.NewDecideService(config.New())
			decision, err := svc.Decide(configPath, args[0], subjectID, environment, now)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decision)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDecision(decision))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./feature-flags.yml", "Flag config file (YAML or JSON)")
	cmd.Flags().StringVar(&subjectID, "subject", "", "Subject identifier (required)")
	cmd.Flags().StringVar(&environment, "env", "", "Current deployment environment")
	cmd.Flags().StringVar(&atTime, "at", "", "Evaluate at this RFC3339 time instead of now")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output decision as JSON")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
