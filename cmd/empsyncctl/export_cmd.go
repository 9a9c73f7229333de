package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empsync/empsync-service/internal/service"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export employees as json, csv or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			exporter := service.NewExportService(nil, nil, rt.cfg.Export.SheetName, rt.logger)
			file, err := exporter.Export(exportFormat, res.Items)
			if err != nil {
				return err
			}

			if output == "" {
				output = file.Filename
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(file.Body)
				return err
			}
			if err := os.WriteFile(output, file.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"file":      output,
				"employees": len(res.Items),
				"source":    res.Source,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: json, csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, or - for stdout (default employees-<date>.<ext>)")
	return cmd
}
