package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthTokenCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token issued by the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = promptSecret("Access token: ")
			}
			token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
			if token == "" {
				return fmt.Errorf("no token provided")
			}

			viper.Set("auth.token", token)
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Println("Token stored. Run 'fitcoach auth whoami' to verify it.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "access token (prompted when omitted)")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Println("Logged out successfully")
			return nil
		},
	}
}

// newAuthTokenCmd mints an HS256 token for local development against a
// server running with JWT_SECRET
func newAuthTokenCmd() *cobra.Command {
	var subject, email, secret string
	var ttl time.Duration
	var save bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token signed with the shared secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}

			token, err := auth.MintToken(subject, email, secret, ttl)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}

			if save {
				viper.Set("auth.token", token)
				if err := writeConfig(); err != nil {
					return fmt.Errorf("failed to save credentials: %w", err)
				}
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "identity provider subject (users.auth_id)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret (default $JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "store the token as the CLI credential")

	return cmd
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rc, err := apiClient.Admin().CheckRole(ctx)
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(rc)
			}

			user := rc.User
			fmt.Printf("Email:        %s\n", user.Email)
			if user.Name != "" {
				fmt.Printf("Name:         %s\n", user.Name)
			}
			fmt.Printf("Role:         %s\n", user.Role)
			fmt.Printf("Subscription: %s (%s)\n", orDash(user.SubscriptionTier), orDash(user.SubscriptionStatus))
			fmt.Printf("Admin:        %v\n", rc.IsAdmin)
			fmt.Printf("ID:           %d\n", user.ID)
			return nil
		},
	}
}

func promptSecret(prompt string) string {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(secret)
}
