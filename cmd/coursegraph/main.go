// Command coursegraph copies the courses of the modulestore into a neo4j graph.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/logging"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "coursegraph",
	Short: "Export course structures to a graph database",
	Long: `coursegraph reads every course from the modulestore and writes one node per
block and one PARENT_OF relationship per parent and child into neo4j.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "path to the JSON config file")
	rootCmd.AddCommand(dumpCmd, loadCmd)
}

// loadOptions reads the config file and checks the settings shared by every command.
func loadOptions() (*config.Options, error) {
	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			return nil, fmt.Errorf("load env: %w", err)
		}
	}

	opts, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logging.SetupLogger(logging.Options{
		Service: logging.ServiceCourseGraph,
		Env:     opts.App.Env,
		Level:   opts.App.LogLevel,
	}, os.Stderr)

	if err := config.ValidateCMS(opts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("coursegraph failed.", "reason", err)
		stop()
		os.Exit(1)
	}
}
