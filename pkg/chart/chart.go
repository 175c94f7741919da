// Package chart loads chart-of-accounts seed files and applies them to
// a ledger. A seed file is YAML listing accounts by name, account type,
// and optional code and description.
package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/oaif-ledger/pkg/ledger"
)

// AccountDef defines one account in a chart seed file.
type AccountDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // account type name, e.g. BANK
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// Chart represents a chart-of-accounts seed.
type Chart struct {
	Accounts []AccountDef `yaml:"accounts"`
}

// Load reads and parses a chart seed file.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := chart.validate(); err != nil {
		return nil, err
	}

	return &chart, nil
}

func (c *Chart) validate() error {
	seen := make(map[string]bool)
	for i, acc := range c.Accounts {
		if acc.Name == "" {
			return fmt.Errorf("chart account %d: name is required", i+1)
		}
		if acc.Type == "" {
			return fmt.Errorf("chart account %q: type is required", acc.Name)
		}
		if seen[acc.Name] {
			return fmt.Errorf("chart account %q: duplicate name", acc.Name)
		}
		seen[acc.Name] = true
	}
	return nil
}

// Seed creates the chart's accounts in the ledger, resolving each
// account type name through the reference catalog. Accounts that
// already exist by name are skipped. Returns the number of accounts
// created.
func (c *Chart) Seed(l *ledger.Ledger) (int, error) {
	created := 0
	for _, acc := range c.Accounts {
		if _, err := l.GetAccountByName(acc.Name); err == nil {
			continue
		} else if !ledger.IsUnknownReference(err) {
			return created, err
		}

		typeID, err := l.Catalog().LookupAccountType(acc.Type)
		if err != nil {
			return created, fmt.Errorf("chart account %q: %w", acc.Name, err)
		}

		if _, err := l.CreateAccount(ledger.NewAccount{
			Name:        acc.Name,
			TypeID:      typeID,
			Code:        acc.Code,
			Description: acc.Description,
		}); err != nil {
			return created, fmt.Errorf("chart account %q: %w", acc.Name, err)
		}
		created++
	}

	return created, nil
}
