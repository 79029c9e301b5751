package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"engdata-admin/internal/common/config"
	"engdata-admin/pkg/registry"
)

func newOperationsCmd(configPath *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List the operations served by the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			var cfg *config.Config

			// The registry listing works without a reachable config.
			if loaded, err := loadConfig(*configPath); err == nil {
				cfg = loaded
				if reg, err = loadRegistry(cfg); err != nil {
					return err
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reg)
			}
			return printOperations(cmd, reg, cfg)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func printOperations(cmd *cobra.Command, reg *registry.OperationRegistry, cfg *config.Config) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tPATH\tENABLED\tSTEPS")
	for _, op := range reg.Operations {
		steps := make([]string, 0, len(op.Steps))
		for _, s := range op.Steps {
			name := s.Name
			if !s.Required {
				name += "?"
			}
			steps = append(steps, name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			op.ID, op.Method, op.Path, config.IsWorkflowEnabled(cfg, op.ID), strings.Join(steps, " > "))
	}
	return w.Flush()
}
