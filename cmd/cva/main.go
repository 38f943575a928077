package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reliefops/cva/internal/interfaces/cli/migrate"
	"github.com/reliefops/cva/internal/interfaces/cli/seed"
	"github.com/reliefops/cva/internal/interfaces/cli/server"
	"github.com/reliefops/cva/internal/interfaces/cli/token"
	httpRouter "github.com/reliefops/cva/internal/interfaces/http"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cva",
		Short:   "CVA entitlement ledger",
		Long:    `Tracks cash and voucher entitlements per household and the distributions that draw them down.`,
		Version: httpRouter.Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
