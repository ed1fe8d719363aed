package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the console",
		Long: `Sign in with an email and password. The session cookie issued by the
console is saved to the session file for later commands.

When --password is omitted the password is read from the first line of stdin.

Examples:
  backoffice-cli login -e admin@example.com -p secret
  echo secret | backoffice-cli login -e admin@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				line, err := readLine(a.in)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = line
			}

			if err := a.client.Auth.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %s", client.Message(err, "Login failed"))
			}

			token, ok := a.client.SessionToken()
			if !ok {
				return errors.New("login failed: console did not set a session cookie")
			}
			if err := saveSession(a.opts.sessionFile, token); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Auth.Logout(cmd.Context()); err != nil {
				return explain("logout", err)
			}
			if err := removeSession(a.opts.sessionFile); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newMeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "me",
		Aliases: []string{"whoami"},
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Auth.Me(cmd.Context())
			if err != nil {
				return explain("whoami", err)
			}
			return a.render(me, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tEMAIL")
				fmt.Fprintf(w, "%v\t%s\n", me.ID, orDash(me.Email))
			})
		},
	}
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
