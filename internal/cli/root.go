// Package cli implements the attend CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/config"
	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/store"
)

var (
	dbPath   string
	logLevel string

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "attend",
	Short: "Activity tracking and adaptive memory for AI assistants",
	Long: "attend turns a stream of window/tab events into productivity insights\n" +
		"and a relevance-ranked memory usable as assistant context. SQLite-backed,\n" +
		"single binary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			c.DBPath = dbPath
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		logger.SetLevel(c.LogLevel)
		cfg = c
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $ATTEND_DB_PATH or ~/.attend/attend.db)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
