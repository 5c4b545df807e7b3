package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configFileName = "feature-flags.yml"

const starterConfig = `# Feature flag declarations.
# Every flag referenced in code (isEnabled/is_enabled/check) must appear here.
#
# Fields (all optional; defaults shown):
#   enabled: false              # global kill switch
#   environments: []            # empty = no environment restriction
#   rollout_percentage: 0       # 0-100, deterministic per-subject bucketing
#   enabled_users: []           # explicit allow-list, overrides percentage
#   start_date / end_date: null # activation window (2006-01-02 or RFC3339)

example_feature:
  enabled: true
  environments: [staging]
  rollout_percentage: 10
  enabled_users:
    - internal_tester_1
`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a starter feature-flags.yml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing feature-flags.yml")

	return cmd
}
