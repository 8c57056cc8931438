package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the current invoice",
	Long:  `Run the full validation pipeline and report every problem found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.Documents.Load(ctx); err != nil {
			return fmt.Errorf("failed to load invoice data: %w", err)
		}

		errs := appInstance.Documents.Validate()
		if len(errs) == 0 {
			fmt.Println("✓ Invoice is valid and ready to export")
			return nil
		}

		fmt.Printf("Found %d problem(s):\n\n", len(errs))
		for _, e := range errs {
			fmt.Printf("  [%s] %s\n", e.Field.Label(), e.Message)
		}
		return fmt.Errorf("invoice has validation errors")
	},
}
