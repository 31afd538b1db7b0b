package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hkoren/free-slots/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read-only Google Calendar access and cache the token",
		Long: `Run the OAuth2 authorization-code flow: print the consent URL, read the
authorization code from stdin and cache the resulting token for later
find invocations. The OAuth client credentials come from the
FREESLOTS_GOOGLE_CLIENT_ID and FREESLOTS_GOOGLE_CLIENT_SECRET
environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := google.GetAuthURL()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Open the following URL in a browser and grant access:\n\n%s\n\nEnter the authorization code: ", url)

			reader := bufio.NewReader(cmd.InOrStdin())
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("empty authorization code")
			}

			if err := google.SaveToken(cmd.Context(), account, code); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Authentication complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	return cmd
}
