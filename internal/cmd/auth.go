package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/auth"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a seller and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if password == "" {
				p, err := prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			res, err := a.client(nil).Login(ctx, email, password)
			if err != nil {
				return userError(err, "Login failed")
			}

			sc, err := a.session(ctx)
			if err != nil {
				return err
			}
			cur := sc.Current()
			if err := sc.Save(ctx, session.Session{
				Token:            res.Token,
				User:             res.User,
				Theme:            cur.Theme,
				SidebarCollapsed: cur.SidebarCollapsed,
			}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "seller email")
	cmd.Flags().StringVar(&password, "password", "", "password, prompted for when omitted")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var in api.SignupInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a seller account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(in.FirstName) == "" {
				return errors.New("--first-name is required")
			}
			if len(in.Password) < 6 {
				return errors.New("--password must be at least 6 characters")
			}
			msg, err := a.client(nil).Signup(cmd.Context(), in)
			if err != nil {
				return userError(err, "Registration failed")
			}
			if msg == "" {
				msg = "Account created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s. Log in with `storefront login --email %s`\n", msg, strings.TrimSpace(in.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, at least 6 characters")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := sc.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in seller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !sc.LoggedIn() {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			u := sc.User()
			fmt.Fprintf(out, "%s <%s>\n", titleStyle.Render(u.DisplayName()), u.Email)
			if claims, err := auth.DecodeToken(sc.Current().Token); err == nil && !claims.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Session expires %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
			}
			fmt.Fprintf(out, "API %s\n", a.cfg.API.BaseURL)
			return nil
		},
	}
}

func prompt(in io.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
