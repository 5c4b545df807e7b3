package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safeflag/safeflag/internal/adapters/outbound/config"
	"github.com/safeflag/safeflag/internal/adapters/outbound/gitinfo"
	"github.com/safeflag/safeflag/internal/adapters/outbound/history"
	"github.com/safeflag/safeflag/internal/adapters/outbound/scanner"
	"github.com/safeflag/safeflag/internal/adapters/outbound/tui"
	"github.com/safeflag/safeflag/internal/adapters/outbound/watcher"
	"github.com/safeflag/safeflag/internal/application"
	"github.com/safeflag/safeflag/internal/domain"
)

func newVerifyCmd() *cobra.Command {
	var (
		sourcePath  string
		configPath  string
		jsonOutput  bool
		strict      bool
		watch       bool
		extensions  []string
		excludeDirs []string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that every flag used in code is declared in config",
		Long: "Scan a source tree for feature-flag checks and compare them against " +
			"the declarative flag configuration. Fails when a flag is used but " +
			"not declared; declared-but-unused flags are advisory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []scanner.Option
			if len(extensions) > 0 {
				opts = append(opts, scanner.WithExtensions(extensions...))
			}
			if len(excludeDirs) > 0 {
				opts = append(opts, scanner.WithExcludeDirs(excludeDirs...))
			}

			svc := application.NewVerifyService(
				scanner.New(opts...),
				config.New(),
				gitinfo.New(),
			)

			if watch {
				return runVerifyWatch(cmd, svc, sourcePath, configPath, jsonOutput, strict)
			}
			return runVerifyOnce(cmd, svc, sourcePath, configPath, jsonOutput, strict)
		},
	}

	cmd.Flags().StringVar(&sourcePath, "path", "./src", "Source path to scan")
	cmd.Flags().StringVar(&configPath, "config", "./feature-flags.yml", "Flag config file (YAML or JSON)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also fail on declared-but-unused flags")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-verify when sources or config change")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to scan (default: js,ts,jsx,tsx,py,go,rs)")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "Additional directory names to skip")

	return cmd
}

func runVerifyOnce(
	cmd *cobra.Command,
	svc *application.VerifyService,
	sourcePath, configPath string,
	jsonOutput, strict bool,
) error {
	report, err := svc.Verify(sourcePath, configPath)
	if err != nil {
		return err
	}

	saveRunEntry(configPath, report)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerifyReport(report))
	}

	if !report.Passed {
		return fmt.Errorf("%d flag(s) used in code but missing from config", len(report.MissingInConfig))
	}
	if strict && len(report.UnusedInSource) > 0 {
		return fmt.Errorf("strict mode: %d declared flag(s) never referenced", len(report.UnusedInSource))
	}
	return nil
}

func runVerifyWatch(
	cmd *cobra.Command,
	svc *application.VerifyService,
	sourcePath, configPath string,
	jsonOutput, strict bool,
) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() error {
		if err := runVerifyOnce(cmd, svc, sourcePath, configPath, jsonOutput, strict); err != nil {
			// In watch mode a failed run is a result, not a reason to stop.
			log.Warn(err)
		}
		return nil
	}

	if err := run(); err != nil {
		return err
	}

	log.Infof("watching %s and %s", sourcePath, configPath)
	err := watcher.Watch(ctx, []string{sourcePath, configPath}, run)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// saveRunEntry appends the run to the project history, best-effort.
func saveRunEntry(configPath string, report *domain.VerifyReport) {
	hist := history.New()
	entry := domain.RunEntry{
		Timestamp:  report.Timestamp.Format(time.RFC3339),
		CommitHash: report.CommitHash,
		Passed:     report.Passed,
		Missing:    len(report.MissingInConfig),
		Unused:     len(report.UnusedInSource),
	}
	_ = hist.Save(filepath.Dir(configPath), entry)
}
