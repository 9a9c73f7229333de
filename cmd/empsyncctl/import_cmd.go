package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empsync/empsync-service/internal/service"
)

func newImportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create employees from a spreadsheet (requires POSTGRES_DSN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			rt, err := openRuntime(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.pg.PoolHandle() == nil {
				return fmt.Errorf("import needs a database: set POSTGRES_DSN")
			}
			importer := service.NewExportService(rt.employees, nil, rt.cfg.Export.SheetName, rt.logger)
			report, err := importer.ImportXLSX(cmd.Context(), f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	return cmd
}
