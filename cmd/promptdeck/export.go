package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/transfer"
)

func newExportCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a bundle",
		Long:  "Export every prompt and command as a JSON bundle, or as a zip archive of Markdown files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()

			var records []catalog.Record
			for _, kind := range []catalog.Kind{catalog.KindPrompt, catalog.KindCommand} {
				kindRecords, err := database.NewRecordRepository(store, kind).GetAll(ctx)
				if err != nil {
					return err
				}
				records = append(records, kindRecords...)
			}

			var data []byte
			switch format {
			case "json":
				data, err = transfer.MarshalBundle(transfer.Export(records, nil))
			case "zip":
				data, err = transfer.ExportArchive(records, nil)
			default:
				return fmt.Errorf("invalid format: %s (valid values: json, zip)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				if format == "zip" {
					return fmt.Errorf("--output is required for zip export")
				}
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			if err := os.WriteFile(output, data, 0600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or zip")

	return cmd
}
