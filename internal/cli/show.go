package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/invoicepro/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.Documents.Load(ctx); err != nil {
			return fmt.Errorf("failed to load invoice data: %w", err)
		}

		doc := appInstance.Documents.Document()
		totals := appInstance.Documents.Totals()

		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Invoice: %s\n", orDash(doc.Details.Number))
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("From:   %s\n", orDash(doc.Provider.Name))
		fmt.Printf("To:     %s\n", orDash(doc.Client.Name))
		fmt.Printf("Date:   %s\n", orDash(doc.Details.IssueDate))
		fmt.Printf("Due:    %s\n", orDash(doc.Details.DueDate))
		fmt.Println()

		fmt.Println("Services:")
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("%-40s %-12s %-12s %-8s %s\n", "Description", "Date", "Category", "Hours", "Status")
		fmt.Println(strings.Repeat("-", 80))

		for _, entry := range doc.Ledger.Entries {
			fmt.Printf("%-40s %-12s %-12s %-8s %s\n",
				truncate(orDash(entry.Description), 40),
				orDash(entry.Date),
				entry.Category,
				orDash(entry.Hours),
				entry.Status,
			)
		}
		fmt.Println(strings.Repeat("-", 80))

		fmt.Println()
		fmt.Printf("Total Hours: %s\n", domain.FormatHours(totals.TotalHours))
		fmt.Printf("Subtotal:    %s\n", domain.FormatMoney(totals.Subtotal))
		fmt.Printf("Tax:         %s\n", domain.FormatMoney(totals.TaxAmount))
		fmt.Printf("Discount:    %s\n", domain.FormatMoney(totals.DiscountAmount))
		fmt.Printf("Total:       %s\n", domain.FormatMoney(totals.GrandTotal))
		fmt.Println(strings.Repeat("=", 80))

		return nil
	},
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
