package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/pratik-mahalle/fitcoach/pkg/client"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer users and subscriptions",
	}

	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminSearchCmd())
	cmd.AddCommand(newAdminStatsCmd())

	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	var opts client.UserListOptions

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := apiClient.Admin().ListUsers(context.Background(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(list)
			}

			renderUsers(list.Users)
			p := list.Pagination
			fmt.Printf("\nPage %d of %d (%d users)\n", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Limit, "limit", 25, "users per page (max 100)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "name or email filter")
	cmd.Flags().StringVar(&opts.Status, "status", "", "subscription status filter")
	cmd.Flags().StringVar(&opts.Tier, "tier", "", "subscription tier filter")
	cmd.Flags().StringVar(&opts.Role, "role", "", "role filter")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&opts.SortOrder, "sort-order", "", "asc or desc")

	return cmd
}

func newAdminSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search users by name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := apiClient.Admin().SearchUsers(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to search users: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(users)
			}
			renderUsers(users)
			return nil
		},
	}
}

func newAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show subscription statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Admin().SubscriptionStats(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			fmt.Printf("Users:            %d\n", stats.Total)
			fmt.Printf("Trialing:         %d\n", stats.Trialing)
			fmt.Printf("Trials expiring:  %d\n\n", stats.ExpiringTrials)

			table := NewTable("STATUS", "USERS")
			for _, k := range sortedKeys(stats.ByStatus) {
				table.AddRow(formatStatus(k), strconv.FormatInt(stats.ByStatus[k], 10))
			}
			table.Render()
			fmt.Println()

			table = NewTable("TIER", "USERS")
			for _, k := range sortedKeys(stats.ByTier) {
				table.AddRow(k, strconv.FormatInt(stats.ByTier[k], 10))
			}
			table.Render()
			return nil
		},
	}
}

func renderUsers(users []client.User) {
	table := NewTable("ID", "EMAIL", "NAME", "ROLE", "TIER", "STATUS")
	for _, u := range users {
		table.AddRow(
			strconv.FormatInt(u.ID, 10),
			u.Email,
			truncate(u.Name, 24),
			u.Role,
			orDash(u.SubscriptionTier),
			formatStatus(orDash(u.SubscriptionStatus)),
		)
	}
	table.Render()
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
