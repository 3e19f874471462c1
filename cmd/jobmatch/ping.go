package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the jobs API key and connectivity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobs, err := newJobClient(cfg)
		if err != nil {
			return err
		}
		n, err := jobs.Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("jobs API check failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Jobs API reachable (%d listings returned)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
