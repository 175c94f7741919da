// Package main is the entry point for the oaif-ledger CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/oaif-ledger/cmd/oaif-ledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
