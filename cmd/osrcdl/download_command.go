package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"osrcdl/internal/download"
	"osrcdl/internal/portal"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the source release matching a version",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ctx.model()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
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

			// The version must match a discovered candidate exactly before
			// any authorization traffic is sent.
			selected, ok := portal.FindByVersion(candidates, version)
			if !ok {
				return fmt.Errorf("no source release of model %s matches version %q", model, version)
			}

			auth, err := client.Authorize(cmd.Context(), selected)
			if err != nil {
				return err
			}

			resp, err := client.RequestDownload(cmd.Context(), auth)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloading %s (%s)\n", download.FilenameFromResponse(resp), selected.SourceVersion)
			result, err := download.Stream(cmd.Context(), resp, download.Options{
				Dir:       cfg.Download.Dir,
				ChunkSize: cfg.ChunkSizeBytes(),
				Logger:    logger,
				Progress:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s (%s in %s)\n",
				result.Path,
				humanize.Bytes(uint64(result.Bytes)),
				result.Elapsed.Round(time.Millisecond),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "Source version to download")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}
