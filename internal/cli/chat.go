package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Support chat",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "messages",
		Short: "Show your support conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := apiClient.Chat().Messages(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load messages: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(messages)
			}
			if len(messages) == 0 {
				fmt.Println("No messages yet")
				return nil
			}
			for _, m := range messages {
				fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.SenderType, m.Content)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "send <message...>",
		Short: "Send a message to support",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Chat().Send(context.Background(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Println("Message sent")
			if res.AutoReply != nil {
				fmt.Printf("support: %s\n", res.AutoReply.Content)
			}
			return nil
		},
	})

	return cmd
}
