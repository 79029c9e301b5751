// cmd/admin-gateway/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set through ldflags at build time.
var version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "admin-gateway",
		Short:         "Administrative gateway for the engineering data service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: configs/config.yaml)")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newOperationsCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
