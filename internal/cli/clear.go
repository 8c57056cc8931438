package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all invoice data",
	Long:  `Delete the stored invoice and start over with a fresh document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL invoice data. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Documents.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear invoice data: %w", err)
		}

		fmt.Println("All invoice data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
