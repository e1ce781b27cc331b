package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zodiacle/internal/horoscope"
	"zodiacle/internal/scraper"
	"zodiacle/internal/zodiac"
)

// scraper runs the resolver directly against the upstream sites, without the
// API or auth, to check that extraction still works.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	horoscopeBase string
	compatBase    string
	timeout       time.Duration
	strict        bool
	urlOnly       bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "scraper",
		Short:        "Fetch horoscope text straight from the upstream sites",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.horoscopeBase, "horoscope-base", envOr("ZODIACLE_HOROSCOPE_BASE_URL", horoscope.DefaultHoroscopeBase), "horoscope site base URL")
	root.PersistentFlags().StringVar(&o.compatBase, "compat-base", envOr("ZODIACLE_COMPATIBILITY_BASE_URL", horoscope.DefaultCompatibilityBase), "compatibility site base URL")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", 15*time.Second, "upstream timeout")
	root.PersistentFlags().BoolVar(&o.strict, "strict", false, "reject signs outside the twelve canonical ones")
	root.PersistentFlags().BoolVar(&o.urlOnly, "url-only", false, "print the upstream URL instead of fetching it")

	var day string
	daily := &cobra.Command{
		Use:   "daily <sign>",
		Short: "Daily horoscope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := zodiac.ParsePeriod(day)
			if err != nil {
				return err
			}
			return o.run(cmd, args, func(ctx context.Context, r *horoscope.Resolver, s []zodiac.Sign) (string, string, error) {
				u, err := r.DailyURL(s[0], period)
				if err != nil || o.urlOnly {
					return u, "", err
				}
				text, err := r.ByDay(ctx, s[0], period)
				return u, text, err
			})
		},
	}
	daily.Flags().StringVar(&day, "day", "hoy", "hoy, manana or semanal")

	weekly := &cobra.Command{
		Use:   "weekly <sign>",
		Short: "Weekly horoscope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, func(ctx context.Context, r *horoscope.Resolver, s []zodiac.Sign) (string, string, error) {
				if o.urlOnly {
					return r.WeeklyURL(s[0]), "", nil
				}
				text, err := r.ByWeek(ctx, s[0])
				return r.WeeklyURL(s[0]), text, err
			})
		},
	}

	monthly := &cobra.Command{
		Use:   "monthly <sign>",
		Short: "Monthly horoscope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, func(ctx context.Context, r *horoscope.Resolver, s []zodiac.Sign) (string, string, error) {
				if o.urlOnly {
					return r.MonthlyURL(s[0]), "", nil
				}
				text, err := r.ByMonth(ctx, s[0])
				return r.MonthlyURL(s[0]), text, err
			})
		},
	}

	compat := &cobra.Command{
		Use:   "compat <sign_a> <sign_b>",
		Short: "Compatibility text for an ordered pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, func(ctx context.Context, r *horoscope.Resolver, s []zodiac.Sign) (string, string, error) {
				u := r.CompatibilityURL(s[0], s[1])
				if o.urlOnly {
					return u, "", nil
				}
				text, err := r.Compatibility(ctx, s[0], s[1])
				return u, text, err
			})
		},
	}

	root.AddCommand(daily, weekly, monthly, compat)
	return root
}

type resolveFunc func(ctx context.Context, r *horoscope.Resolver, signs []zodiac.Sign) (url, text string, err error)

func (o *options) run(cmd *cobra.Command, args []string, fn resolveFunc) error {
	policy := zodiac.PolicyPassthrough
	if o.strict {
		policy = zodiac.PolicyStrict
	}
	signs := make([]zodiac.Sign, 0, len(args))
	for _, a := range args {
		s, err := policy.ParseSign(a)
		if err != nil {
			return err
		}
		signs = append(signs, s)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout+5*time.Second)
	defer cancel()

	r := horoscope.NewResolver(scraper.New(scraper.Options{Timeout: o.timeout}), o.horoscopeBase, o.compatBase)
	u, text, err := fn(ctx, r, signs)
	if err != nil {
		slog.Error("scrape failed", "url", u, "error", err)
		return err
	}
	if o.urlOnly {
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	}
	slog.Debug("scraped", "url", u, "chars", len(text))
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
