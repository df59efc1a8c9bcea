package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruwler/ruwler-go/validation"
)

// passwordEnv supplies the password when --password is not given.
const passwordEnv = "RUWLER_PASSWORD"

func newLoginCmd(opts *Options) *cobra.Command {
	var (
		password  string
		showToken bool
	)
	cmd := &cobra.Command{
		Use:   "login EMAIL",
		Short: "Log in and report the session token expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			err := validation.New().
				Required("email", args[0]).
				Email("email", args[0]).
				Required("password", password).
				Validate()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			sess, err := s.client.LoginSession(ctx, args[0], password)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sess.ExpiresAt.IsZero() {
				fmt.Fprintln(out, "logged in, token expiry unknown")
			} else {
				fmt.Fprintf(out, "logged in, token expires at %s\n", sess.ExpiresAt.UTC().Format(time.RFC3339))
			}
			if showToken {
				fmt.Fprintln(out, sess.Token)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (default: $"+passwordEnv+")")
	cmd.Flags().BoolVar(&showToken, "show-token", false, "Print the issued token")
	return cmd
}
