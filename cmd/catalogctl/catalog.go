package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import components from a JSON array or an .xlsx workbook",
		Long: `Import catalog records. Every record is normalised and tagged before it
is stored; existing records with the same objectID are overwritten.

Examples:
  catalogctl import components.json
  catalogctl import catalog.xlsx --sqlite catalog.db
  catalogctl import catalog.xlsx --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if replace, _ := cmd.Flags().GetBool("replace"); replace {
				n, err := svc.Purge(ctx)
				if err != nil {
					return err
				}
				printWarning(cmd.ErrOrStderr(), fmt.Sprintf("Removed %d existing component(s)", n))
			}

			path := args[0]
			var result *service.ImportResult
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				f, err := excelize.OpenFile(path)
				if err != nil {
					return fmt.Errorf("open workbook %s: %w", path, err)
				}
				defer f.Close()
				result, err = svc.ImportXLSX(ctx, f)
				if err != nil {
					return err
				}
			case ".json":
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				result, err = svc.ImportJSON(ctx, data)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported file type %q (supported: .json, .xlsx)", filepath.Ext(path))
			}

			if ok, err := tryJSON(cmd, result); ok {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, fmt.Sprintf("Imported %d component(s)", result.Success))
			for _, e := range result.Errors {
				where := "record " + strconv.Itoa(e.Row)
				if e.Sheet != "" {
					where = fmt.Sprintf("%s row %d", e.Sheet, e.Row)
				}
				printError(out, fmt.Sprintf("%s: %s", where, e.Message))
			}
			return nil
		},
	}
	cmd.Flags().Bool("replace", false, "Empty the catalog before importing")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to an .xlsx workbook, one sheet per component type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			f, filename, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			defer f.Close()

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = filename
			}
			if err := f.SaveAs(output); err != nil {
				return fmt.Errorf("save workbook: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Catalog written to "+output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file path (default catalog_<date>.xlsx)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count catalog components by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			counts, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := tryJSON(cmd, counts); ok {
				return err
			}

			var total int64
			rows := make([][]string, 0, len(counts)+1)
			for _, c := range counts {
				rows = append(rows, []string{c.ComponentType, strconv.FormatInt(c.Count, 10)})
				total += c.Count
			}
			rows = append(rows, []string{"total", strconv.FormatInt(total, 10)})
			renderTable(cmd.OutOrStdout(), []string{"TYPE", "COUNT"}, rows)
			return nil
		},
	}
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Export the catalog and upload it to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			object, err := svc.Archive(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Archived to "+object)
			return nil
		},
	}
}
