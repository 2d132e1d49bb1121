package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/hpcsort/mergesort/internal/config"
)

var (
	verbose bool
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "mergesort",
	Short: "Sort records with a hybrid shared-memory and distributed merge-sort engine",
	Long: `mergesort generates (or reads) a fixed-schema record array and sorts it
using a single-node farm of Sort/Merge workers, optionally distributed
across a power-of-two group of ranks connected by message passing.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	config.BindFlags(rootCmd.PersistentFlags(), v)
}

// Execute runs the root command and exits with a non-zero status on
// failure, matching spec §6's exit-code contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logLevel() zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
