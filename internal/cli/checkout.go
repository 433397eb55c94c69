package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Inspect Stripe checkouts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <session-id>",
		Short: "Verify a checkout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := apiClient.Checkout().VerifySession(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to verify session: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cs)
			}
			fmt.Printf("Session: %s\n", cs.ID)
			fmt.Printf("Email:   %s\n", orDash(cs.Email))
			fmt.Printf("Name:    %s\n", orDash(cs.Name))
			fmt.Printf("Product: %s\n", cs.ProductType)
			fmt.Printf("Status:  %s\n", formatStatus(cs.Status))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "product-type <price-id>",
		Short: "Show the tier a price grants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := apiClient.Checkout().ProductType(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve price: %w", err)
			}
			fmt.Println(tier)
			return nil
		},
	})

	return cmd
}
