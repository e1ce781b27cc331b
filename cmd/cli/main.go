package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

type globals struct {
	baseURL   string
	tokenPath string
	timeout   time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "zodiacle",
		Short:         "Command-line client for the zodiacle horoscope API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&g.baseURL, "api", defaultBaseURL, "API base URL including prefix")
	root.PersistentFlags().StringVar(&g.tokenPath, "token", defaultTokenPath(), "token file path")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 20*time.Second, "request timeout")

	root.AddCommand(
		loginCmd(g),
		logoutCmd(g),
		protectedCmd(g),
		dailyCmd(g),
		periodCmd(g, "weekly", "Weekly horoscope for a sign"),
		periodCmd(g, "monthly", "Monthly horoscope for a sign"),
		compatCmd(g),
	)
	return root
}

func loginCmd(g *globals) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a token and store it in the token file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := newAPIClient(g.baseURL, g.timeout).login(password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := saveToken(g.tokenPath, token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "login password, when the server requires one")
	return cmd
}

func logoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := clearToken(g.tokenPath); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func protectedCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "protected",
		Short: "Check that the stored token is accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := readToken(g.tokenPath)
			if err != nil {
				return err
			}
			msg, err := newAPIClient(g.baseURL, g.timeout).protected(token)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func dailyCmd(g *globals) *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "daily <sign>",
		Short: "Daily horoscope for a sign (--day hoy|manana|semanal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(g.tokenPath)
			if err != nil {
				return err
			}
			text, err := newAPIClient(g.baseURL, g.timeout).horoscope(token, "/horoscopes/daily",
				map[string]string{"sign": args[0], "day": day})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "hoy", "hoy, manana or semanal (today, tomorrow, weekly)")
	return cmd
}

func periodCmd(g *globals, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <sign>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(g.tokenPath)
			if err != nil {
				return err
			}
			text, err := newAPIClient(g.baseURL, g.timeout).horoscope(token, "/horoscopes/"+name,
				map[string]string{"sign": args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func compatCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "compat <sign_a> <sign_b>",
		Short: "Compatibility text for an ordered pair of signs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(g.tokenPath)
			if err != nil {
				return err
			}
			text, err := newAPIClient(g.baseURL, g.timeout).compatibility(token, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
