package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoicepro/internal/service"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the invoice as a PDF",
	Long:  `Validate the invoice and write it as a PDF into the configured output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.Documents.Load(ctx); err != nil {
			return fmt.Errorf("failed to load invoice data: %w", err)
		}

		path, errs, err := appInstance.Printing.ExportPDF(ctx, exportOutput)
		if len(errs) > 0 {
			fmt.Printf("Invoice is not ready to export, %d problem(s):\n\n", len(errs))
			for _, e := range errs {
				fmt.Printf("  [%s] %s\n", e.Field.Label(), e.Message)
			}
			return fmt.Errorf("invoice has validation errors")
		}
		if err != nil {
			if service.IsNothingToPrint(err) {
				return fmt.Errorf("no complete service entries to export")
			}
			return fmt.Errorf("failed to export invoice: %w", err)
		}

		fmt.Printf("✓ Invoice exported: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the PDF to this path instead of the output directory")
}
