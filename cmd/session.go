package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luminox/luminox/auth"
	"github.com/luminox/luminox/pkg/format"
	"github.com/luminox/luminox/pkg/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Luminox API",
		Long:  "Sign in with your e-mail and password. The tokens are kept in the local database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				email = promptForInput(cmd, in, "E-mail: ")
			}
			password := promptForPassword(cmd, in, "Password: ")

			if err := validation.ValidateCredentials(email, password); err != nil {
				return invalid(err)
			}

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return apiError("log in", err)
			}
			cmd.Printf("Logged in as %s.\n", displayName(user))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "E-mail to sign in with (prompted when empty)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}

			user := a.session.User()
			if remote {
				var err error
				if user, err = a.session.FetchProfile(cmd.Context()); err != nil {
					return apiError("fetch the profile", err)
				}
			}
			if user == nil {
				cmd.Println("Logged in, but the token carries no user details.")
				return nil
			}

			cmd.Println("Name:", displayName(user))
			cmd.Println("E-mail:", orPlaceholder(user.Email))
			cmd.Println("Role:", orPlaceholder(user.Role))
			if user.ID != nil {
				cmd.Println("ID:", *user.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Ask the API for the profile instead of reading the token")
	return cmd
}

func displayName(u *auth.User) string {
	if u == nil || u.Name == "" {
		return auth.DefaultName
	}
	return u.Name
}

func orPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}

// promptForInput prompts on the command's output and reads one trimmed line from in.
func promptForInput(cmd *cobra.Command, in *bufio.Reader, prompt string) string {
	cmd.Print(prompt)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptForPassword reads a password without echo when stdin is a terminal,
// and a plain line otherwise (pipes and tests).
func promptForPassword(cmd *cobra.Command, in *bufio.Reader, prompt string) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print(prompt)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(password))
	}
	return promptForInput(cmd, in, prompt)
}
