package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pratik-mahalle/fitcoach/pkg/client"
	"github.com/spf13/cobra"
)

func newJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Queue and inspect AI jobs",
	}

	cmd.AddCommand(newJobEnqueueCmd())
	cmd.AddCommand(newJobLatestCmd())
	cmd.AddCommand(newJobLastRefreshCmd())
	cmd.AddCommand(newJobRefreshCmd())

	return cmd
}

func newJobEnqueueCmd() *cobra.Command {
	var payload, dedupeKey string
	var userID int64
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "enqueue <job-type>",
		Short: "Queue a job (context_refresh, program_generation, preview_action, apply_action)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.EnqueueRequest{
				JobType:   args[0],
				DedupeKey: dedupeKey,
			}
			if payload != "" {
				if !json.Valid([]byte(payload)) {
					return fmt.Errorf("--payload is not valid JSON")
				}
				req.Payload = json.RawMessage(payload)
			}
			if userID > 0 {
				req.UserID = &userID
			}
			if delay > 0 {
				at := time.Now().Add(delay).UTC()
				req.ScheduledFor = &at
			}

			res, err := apiClient.Jobs().Enqueue(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to enqueue job: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			if res.Deduplicated {
				fmt.Println("A job with this dedupe key already exists; nothing queued")
				return nil
			}
			fmt.Printf("Job %s queued\n", res.JobID)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "JSON payload")
	cmd.Flags().StringVar(&dedupeKey, "dedupe-key", "", "deduplication key")
	cmd.Flags().Int64Var(&userID, "user", 0, "target user id (admins only)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "schedule the job this far in the future")

	return cmd
}

func newJobLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest <job-type>",
		Short: "Show your newest job of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := apiClient.Jobs().Latest(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(j)
			}

			fmt.Printf("ID:        %s\n", j.ID)
			fmt.Printf("Type:      %s\n", j.JobType)
			fmt.Printf("Status:    %s\n", formatStatus(j.Status))
			fmt.Printf("Scheduled: %s\n", formatTime(&j.ScheduledFor))
			fmt.Printf("Completed: %s\n", formatTime(j.CompletedAt))
			if j.ErrorMessage != "" {
				fmt.Printf("Error:     %s\n", j.ErrorMessage)
			}
			if len(j.Result) > 0 {
				fmt.Printf("Result:    %s\n", truncate(string(j.Result), 200))
			}
			return nil
		},
	}
}

func newJobLastRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-refresh",
		Short: "Show your latest context refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := apiClient.Jobs().LastRefresh(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get refresh status: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rs)
			}

			fmt.Printf("Last refresh: %s\n", formatTime(rs.LastRefreshAt))
			fmt.Printf("Status:       %s\n", formatStatus(rs.Status))
			for _, line := range rs.ChangeSummary {
				fmt.Printf("  - %s\n", line)
			}
			return nil
		},
	}
}

func newJobRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Request a context refresh now",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Jobs().ForceRefresh(context.Background())
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsRateLimited() {
					return fmt.Errorf("refresh already requested recently: %s", apiErr.Message)
				}
				return fmt.Errorf("failed to request refresh: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Printf("Context refresh %s queued\n", res.JobID)
			return nil
		},
	}
}
