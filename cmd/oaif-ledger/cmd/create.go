package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/chart"
	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/ledger"
)

var (
	companyName  string
	baseCurrFlag string
	chartFile    string
)

// createCmd represents the create command.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new OAIF store",
	Long: `Create a new OAIF store file with the standard schema, seeded
reference taxonomies, and required metadata.

Optionally seeds a chart of accounts from a YAML file:

  accounts:
    - name: Checking Account
      type: BANK
      code: "1000"

Example:
  oaif-ledger create --company "Example Company Inc."
  oaif-ledger create --company "Example Company Inc." --chart chart.yaml`,
	Run: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&companyName, "company", "", "company name (required)")
	createCmd.Flags().StringVar(&baseCurrFlag, "currency", "", "base currency (default from config, then USD)")
	createCmd.Flags().StringVar(&chartFile, "chart", "", "chart-of-accounts YAML seed file")

	createCmd.MarkFlagRequired("company")
}

func runCreate(cmd *cobra.Command, args []string) {
	cfg, resolver, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	currency := baseCurrFlag
	if currency == "" {
		currency = cfg.Store.BaseCurrency
	}

	path := resolver.GetStorePath()
	slog.Info("Creating store", "path", path, "company", companyName, "currency", currency)

	conn, err := db.Create(path, db.CreateOptions{
		CompanyName:  companyName,
		BaseCurrency: currency,
		SourceSystem: cfg.Store.SourceSystem,
		CreatedBy:    cfg.Store.CreatedBy,
	})
	exitOnError(err, "failed to create store")
	defer conn.Close()

	created := 0
	if chartFile != "" {
		l, err := ledger.New(conn)
		exitOnError(err, "failed to open ledger session")

		c, err := chart.Load(chartFile)
		exitOnError(err, "failed to load chart file")

		created, err = c.Seed(l)
		exitOnError(err, "failed to seed chart of accounts")
	}

	fmt.Printf("Created %s\n", path)
	if created > 0 {
		fmt.Printf("Seeded %d accounts\n", created)
	}

	slog.Info("Store created", "path", path, "accounts_seeded", created)
}
