package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access [feature...]",
		Short: "Check subscription access to features",
		Long:  "Check access to btn, engine, applied_power or premium. With no arguments every feature is checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			features := args
			if len(features) == 0 {
				features = statusFeatures
			}

			ctx := context.Background()
			table := NewTable("FEATURE", "ACCESS")
			var results []interface{}
			for _, f := range features {
				d, err := apiClient.Access().Check(ctx, f)
				if err != nil {
					return fmt.Errorf("failed to check %s: %w", f, err)
				}
				results = append(results, d)
				table.AddRow(d.Feature, formatAccess(d.HasAccess, d.Reason))
			}

			if getOutputFormat() != "table" {
				return printOutput(results)
			}
			table.Render()
			return nil
		},
	}
}
