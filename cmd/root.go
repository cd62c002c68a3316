package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "intervue",
	Short: "AI-assisted timed interview service",
	Long:  "Intervue runs timed technical interviews: invite tokens, a fixed six-question plan, AI scoring with deterministic fallbacks.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.Init(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a config file (default intervue.yaml in the current directory)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVUE_DB env var)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	cobra.CheckErr(viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db")))
	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))
	cobra.CheckErr(viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json")))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inviteCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the final configuration view for a command invocation.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), cfgFile)
}

// newLogger builds the process logger from the loaded configuration.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Debug)
}

// openStore resolves the database path and opens the store. Flag wins, then
// INTERVUE_DB, then the per-user default location.
func openStore(cfg *config.Config, log *zap.Logger) (*store.Store, error) {
	path := cfg.DBPath
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, err
		}
	} else {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	return store.Open(path, log)
}
