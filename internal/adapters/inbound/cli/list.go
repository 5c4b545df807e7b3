package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	configloader "github.com/safeflag/safeflag/internal/adapters/outbound/config"
	"github.com/safeflag/safeflag/internal/adapters/outbound/tui"
	"github.com/safeflag/safeflag/internal/domain"
)

func newListCmd() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declared flags and their rollout state",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := configloader.New().Load(configPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				out := make([]map[string]interface{}, 0, flags.Len())
				for _, name := range flags.Names() {
					cfg, _ := flags.Get(name)
					out = append(out, flagJSON(name, cfg))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFlagList(flags))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./feature-flags.yml", "Flag config file (YAML or JSON)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// flagJSON keeps declaration order in the output by emitting a list of
// name-tagged objects instead of one unordered map.
func flagJSON(name string, cfg domain.FlagConfig) map[string]interface{} {
	entry := map[string]interface{}{
		"name":               name,
		"enabled":            cfg.Enabled,
		"rollout_percentage": cfg.RolloutPercentage,
	}
	if len(cfg.Environments) > 0 {
		entry["environments"] = cfg.Environments
	}
	if len(cfg.EnabledSubjects) > 0 {
		entry["enabled_subjects"] = cfg.EnabledSubjects
	}
	if cfg.StartDate != nil {
		entry["start_date"] = cfg.StartDate
	}
	if cfg.EndDate != nil {
		entry["end_date"] = cfg.EndDate
	}
	return entry
}
