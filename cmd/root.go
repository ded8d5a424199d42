package cmd

import (
	"fmt"
	"os"

	"kb-admin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory whose .env file is loaded before the environment.
var configDir string

// RootCmd is the kb-admin entry point.
var RootCmd = &cobra.Command{
	Use:   "kb-admin",
	Short: "Knowledge base admin console",
	Long: `kb-admin manages the metadata tables of the ESG knowledge base
(reports, standards, esg_meta): paged browsing, batch edits, document uploads
and the remote search agent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// CLI errors go to a console logger regardless of the configured format.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("Command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}
