// Package cmd provides CLI commands for oaif-ledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/config"
	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/pathutil"
)

var (
	cfgFile   string
	storePath string
	debug     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "oaif-ledger",
	Short: "Manage OAIF double-entry accounting stores",
	Long: `oaif-ledger is a CLI tool for OAIF (Open Accounting Interchange
Format) stores: single-file double-entry ledgers with verified format
identity and exact fixed-point arithmetic.

It supports:
- Creating stores with a seeded chart of accounts
- Posting balanced journal entries
- Voiding posted entries
- Trial balance reporting with balance verification

Example:
  oaif-ledger create --company "Example Company Inc."
  oaif-ledger post entry.yaml
  oaif-ledger trial-balance --verify`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "OAIF store file (default from config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(voidCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(trialBalanceCmd)
	rootCmd.AddCommand(infoCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// loadConfig loads configuration and builds the path resolver, honoring
// the --store flag over the environment.
func loadConfig() (*config.Config, *pathutil.PathResolver, error) {
	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, nil, err
	}

	path := storePath
	if path == "" {
		path = cfg.Store.Path
	}

	resolver := pathutil.New(pathutil.Config{
		Root:      cfg.Store.Root,
		StorePath: path,
		ChartPath: cfg.Store.ChartPath,
	})

	return cfg, resolver, nil
}

// openLedger opens the configured store and starts a ledger session.
func openLedger(readOnly bool) (*db.Connection, *ledger.Ledger, error) {
	_, resolver, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := resolver.GetStorePath()
	slog.Debug("Opening store", "path", path, "read_only", readOnly)

	var conn *db.Connection
	if readOnly {
		conn, err = db.OpenReadOnly(path)
	} else {
		conn, err = db.Open(path)
	}
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.New(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return conn, l, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
