package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"osrcdl/internal/portal"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for source releases of a device model",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ctx.model()
			if err != nil {
				return err
			}
			client, err := ctx.portalClient()
			if err != nil {
				return err
			}

			candidates, err := client.Search(cmd.Context(), model)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, candidates)
			}

			if len(candidates) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No releases found for model %s\n", model)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCandidateTable(candidates))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Emit results as JSON")
	return cmd
}

func renderCandidateTable(candidates []portal.ReleaseCandidate) string {
	rows := make([][]string, 0, len(candidates))
	for i, candidate := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			candidate.SourceModel,
			candidate.SourceVersion,
		})
	}
	return renderTable([]string{"#", "Model", "Version"}, rows)
}
