package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/config"
	logpkg "github.com/kailas-cloud/aspectmind/internal/logger"
	"github.com/kailas-cloud/aspectmind/internal/transport/remote"
	"github.com/kailas-cloud/aspectmind/internal/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	remoteURL string
	timeout   time.Duration
	logLevel  string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "aspectmind",
		Short: "Aspect-based product discovery client",
		Long: `aspectmind talks to an aspect-sentiment analysis service.

It can run one-shot searches, comparisons, analytics and feedback from the
terminal, or serve stateful sessions over HTTP with "aspectmind serve".`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.remoteURL, "remote", "", "Analysis service base URL (overrides config)")
	cmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 0, "Per-request timeout (overrides config)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(g),
		searchCmd(g),
		compareCmd(g),
		analyticsCmd(g),
		analyzeCmd(g),
		feedbackCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	return cmd
}

// loadConfig reads config/<env>.yaml, falling back to defaults when the file is absent,
// and applies flag overrides.
func loadConfig(env string, g *globalFlags) (config.Config, error) {
	cfg, err := config.Load(env)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}
	if g.remoteURL != "" {
		cfg.Remote.BaseURL = g.remoteURL
	}
	if g.timeout > 0 {
		cfg.Remote.TimeoutSec = int((g.timeout + time.Second - 1) / time.Second)
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// cliEnv builds the logger and remote client for one-shot commands.
func cliEnv(g *globalFlags) (*remote.Client, *zap.Logger, error) {
	cfg, err := loadConfig(config.GetEnv(), g)
	if err != nil {
		return nil, nil, err
	}
	// CLI commands stay quiet unless asked
	logger, err := logpkg.NewCLI(g.logLevel)
	if err != nil {
		return nil, nil, err
	}
	timeout := cfg.Remote.Timeout()
	if g.timeout > 0 {
		timeout = g.timeout
	}
	client, err := remote.New(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: timeout,
		Logger:  logger.Named("remote"),
	})
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}
