package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusFeatures = []string{"btn", "engine", "applied_power", "premium"}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and your subscription access",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, healthErr := apiClient.Health(ctx)
			authenticated := apiClient.GetToken() != ""

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}
				if healthErr == nil {
					summary["server"] = health.Status
				} else {
					summary["server"] = healthErr.Error()
				}
				if authenticated {
					access := map[string]bool{}
					for _, f := range statusFeatures {
						if d, err := apiClient.Access().Check(ctx, f); err == nil {
							access[f] = d.HasAccess
						}
					}
					summary["access"] = access
				}
				return printOutput(summary)
			}

			fmt.Println("FitCoach Status")
			fmt.Println(strings.Repeat("=", 40))

			if healthErr != nil {
				fmt.Printf("  Server:        (error: %v)\n", healthErr)
				return nil
			}
			fmt.Printf("  Server:        %s\n", formatStatus(health.Status))

			if !authenticated {
				fmt.Println("  Access:        (not logged in)")
				return nil
			}

			for _, f := range statusFeatures {
				d, err := apiClient.Access().Check(ctx, f)
				if err != nil {
					fmt.Printf("  %-14s (error: %v)\n", f+":", err)
					continue
				}
				fmt.Printf("  %-14s %s\n", f+":", formatAccess(d.HasAccess, d.Reason))
			}

			if rs, err := apiClient.Jobs().LastRefresh(ctx); err == nil {
				fmt.Printf("  Last refresh:  %s (%s)\n", formatTime(rs.LastRefreshAt), rs.Status)
			}

			return nil
		},
	}
}
