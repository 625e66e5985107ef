package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var modelFlag string
	var configFlag string

	ctx := newCommandContext(&modelFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "osrcdl",
		Short:         "Query and download vendor open-source releases",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Device model to query (e.g. SM-X910)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
