package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/fitcoach/pkg/client"
	"github.com/spf13/cobra"
)

func newBTNCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "btn",
		Short: "BTN workouts and results",
	}

	cmd.AddCommand(newBTNListCmd())
	cmd.AddCommand(newBTNLogCmd())
	cmd.AddCommand(newBTNAthleteCmd())

	return cmd
}

func newBTNListCmd() *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your BTN workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := apiClient.Workouts().ListBTN(context.Background(), status, limit)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			return renderBTNList(list)
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "filter: all, completed, incomplete")
	cmd.Flags().IntVar(&limit, "limit", 0, "max workouts")

	return cmd
}

func newBTNAthleteCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "athlete <athlete-id>",
		Short: "List a linked athlete's BTN workouts (coaches and admins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			athleteID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid athlete id: %s", args[0])
			}

			list, err := apiClient.Workouts().AthleteBTN(context.Background(), athleteID, status)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			return renderBTNList(list)
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "filter: all, completed, incomplete")

	return cmd
}

func newBTNLogCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "log <workout-id> <score>",
		Short: "Log a result, e.g. 'btn log 12 7:45' or 'btn log 13 5+12'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workoutID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid workout id: %s", args[0])
			}

			res, err := apiClient.Workouts().LogResult(context.Background(), workoutID, args[1], notes)
			if err != nil {
				return fmt.Errorf("failed to log result: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}

			fmt.Printf("Score:      %s\n", res.Benchmarks.YourScore)
			fmt.Printf("Median:     %s\n", res.Benchmarks.Median)
			fmt.Printf("Excellent:  %s\n", res.Benchmarks.Excellent)
			fmt.Printf("Percentile: %d\n", res.Percentile)
			fmt.Printf("Tier:       %s\n", res.PerformanceTier)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "notes to store with the result")

	return cmd
}

func renderBTNList(list *client.BTNList) error {
	if getOutputFormat() != "table" {
		return printOutput(list)
	}

	table := NewTable("ID", "NAME", "FORMAT", "SCORE", "PERCENTILE", "TIER")
	for _, w := range list.Workouts {
		score, pct, tier := "-", "-", "-"
		if w.UserScore != nil {
			score = *w.UserScore
		}
		if w.Percentile != nil {
			pct = strconv.Itoa(*w.Percentile)
		}
		if w.PerformanceTier != nil {
			tier = *w.PerformanceTier
		}
		table.AddRow(strconv.FormatInt(w.ID, 10), truncate(w.Name, 32), w.Format, score, pct, tier)
	}
	table.Render()

	s := list.Stats
	fmt.Printf("\n%d workouts, %d completed (%d%%)\n", s.Total, s.Completed, s.CompletionRate)
	return nil
}
