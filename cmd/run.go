package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openreach/formpilot/internal/browser"
	"github.com/openreach/formpilot/internal/config"
	"github.com/openreach/formpilot/internal/engine"
	"github.com/openreach/formpilot/internal/engine/captcha"
	"github.com/openreach/formpilot/internal/engine/discovery"
	"github.com/openreach/formpilot/internal/engine/fill"
	"github.com/openreach/formpilot/internal/engine/navigator"
	"github.com/openreach/formpilot/internal/engine/obstacle"
	"github.com/openreach/formpilot/internal/observability"
	"github.com/openreach/formpilot/internal/profile"
	"github.com/openreach/formpilot/internal/screenshot"
)

// newRunCmd creates and configures the `run` command.
func newRunCmd() *cobra.Command {
	var concurrency int

	runCmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Discover and fill the contact form for each target URL",
		Long: `Run drives a headless browser against each target URL, locates a
contact form, fills it from the sender profile and reports one outcome record
per target as a JSON line on stdout. Logs go to stderr.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to viper keys so CLI values override file and env.
			if err := viper.BindPFlag("screenshots.dir", cmd.Flags().Lookup("screenshot-dir")); err != nil {
				return err
			}
			if err := viper.BindPFlag("browser.headless", cmd.Flags().Lookup("headless")); err != nil {
				return err
			}
			if err := viper.BindPFlag("navigation.timeout", cmd.Flags().Lookup("timeout")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			// Missing or unparseable profile input degrades to defaults
			// rather than failing the run.
			sender := profile.Load(viper.GetString("profile"))

			shots, err := screenshot.NewWriter(cfg.Screenshots.Dir)
			if err != nil {
				return err
			}

			targets := make([]string, len(args))
			for i, t := range args {
				targets[i] = ensureScheme(t)
			}

			logger.Info("Starting run",
				zap.Strings("targets", targets),
				zap.Int("concurrency", concurrency))

			outcomes := make([]engine.Outcome, len(targets))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i, target := range targets {
				g.Go(func() error {
					outcomes[i] = runOne(gctx, cfg, sender, shots, target, logger)
					return nil
				})
			}
			// Workers never return errors; failures land in their outcome.
			_ = g.Wait()

			anySuccess := false
			for i, out := range outcomes {
				data, err := out.JSON()
				if err != nil {
					logger.Error("failed to encode outcome",
						zap.String("target", targets[i]), zap.Error(err))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				if out.Success {
					anySuccess = true
				}
			}
			if !anySuccess {
				return fmt.Errorf("no target produced a successful outcome")
			}
			return nil
		},
	}

	runCmd.Flags().String("profile", "", "sender profile: JSON literal or path to a JSON file")
	runCmd.Flags().String("screenshot-dir", "", "directory for screenshot captures")
	runCmd.Flags().Bool("headless", true, "run the browser headless")
	runCmd.Flags().Duration("timeout", 0, "navigation timeout for the initial target load")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 1, "how many targets to process in parallel")

	return runCmd
}

// runOne executes the full engine pipeline for a single target. The browser
// is acquired once and released on every exit path.
func runOne(ctx context.Context, cfg *config.Config, sender profile.Profile,
	shots *screenshot.Writer, target string, logger *zap.Logger) engine.Outcome {

	mgr := browser.NewManager(cfg.Browser, logger)
	session, release, err := mgr.Acquire(ctx)
	if err != nil {
		return engine.ErrorOutcome(fmt.Errorf("failed to acquire browser: %w", err))
	}
	defer release()

	nav := navigator.New(
		navigator.Config{
			NavigationTimeout: cfg.Navigation.Timeout,
			Settle:            cfg.Navigation.Settle,
			ProbeContactPaths: cfg.Navigation.ProbeContactPaths,
			ContactPaths:      cfg.Navigation.ContactPaths,
		},
		session,
		obstacle.NewHandler(obstacle.Config{
			AccessibleProbe: cfg.Obstacle.AccessibleProbe,
			SelectorProbe:   cfg.Obstacle.SelectorProbe,
			Settle:          cfg.Obstacle.Settle,
		}, logger),
		discovery.New(discovery.Config{
			MinFields:  cfg.Discovery.MinFields,
			Attempts:   cfg.Discovery.Attempts,
			RetryDelay: cfg.Discovery.RetryDelay,
		}, logger),
		captcha.New(logger),
		fill.New(sender, logger),
		shots,
		logger,
	)
	return nav.Run(ctx, target)
}

func ensureScheme(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "https://" + target
}
