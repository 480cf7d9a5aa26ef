package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wbrown/img2dot/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:               "img2dot",
	Short:             "Convert images into dot matrices for a pen plotter",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.Bool("no-color", false, "Disable colored log output")
}

// setupLogging installs the process-wide slog handler on stderr.
func setupLogging(cmd *cobra.Command, args []string) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	formatStr, _ := cmd.Flags().GetString("log-format")
	noColor, _ := cmd.Flags().GetBool("no-color")

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   level,
		Format:  format,
		NoColor: noColor,
	})
	slog.SetDefault(logging.WithComponent(logger, logging.ComponentCLI))
	return nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
