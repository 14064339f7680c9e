package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token issued by the identity provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token = strings.TrimSpace(token)
			if token == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(b))
			}
			if token == "" {
				token = strings.TrimSpace(os.Getenv("ACCESS_TOKEN"))
			}
			if token == "" {
				return errors.New("missing token (use --token, --token - for stdin, or ACCESS_TOKEN)")
			}

			rt, err := app.open(cmd, startPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.provider.SignIn(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}

			return writeJSON(cmd, app, map[string]interface{}{
				"authenticated": true,
				"user":          user,
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token (\"-\" reads stdin)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	var redirect string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Terminate the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.open(cmd, startPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.bridge.Logout(cmd.Context(), redirect); err != nil {
				return err
			}

			return writeJSON(cmd, app, map[string]interface{}{
				"authenticated": rt.bridge.Authenticated(),
				"path":          rt.history.CurrentPath(),
			})
		},
	}

	cmd.Flags().StringVar(&redirect, "redirect", "/", "Path to navigate to after logout")

	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.open(cmd, startPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.bridge.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			return writeJSON(cmd, app, user)
		},
	}
}
