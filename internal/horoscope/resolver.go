package horoscope

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"zodiacle/internal/scraper"
	"zodiacle/internal/zodiac"
	"zodiacle/pkg/utils"
)

const (
	DefaultHoroscopeBase     = utils.DefaultHoroscopeBaseURL
	DefaultCompatibilityBase = utils.DefaultCompatibilityBaseURL
)

// Resolver maps a sign (and period) onto the upstream page that holds its
// text and delegates the fetch to a scraper.Fetcher. It does not check that
// a sign is canonical; callers decide that through zodiac.Policy.
type Resolver struct {
	Fetcher           scraper.Fetcher
	HoroscopeBase     string
	CompatibilityBase string
}

func NewResolver(f scraper.Fetcher, horoscopeBase, compatibilityBase string) *Resolver {
	if horoscopeBase == "" {
		horoscopeBase = DefaultHoroscopeBase
	}
	if compatibilityBase == "" {
		compatibilityBase = DefaultCompatibilityBase
	}
	return &Resolver{
		Fetcher:           f,
		HoroscopeBase:     strings.TrimRight(horoscopeBase, "/"),
		CompatibilityBase: strings.TrimRight(compatibilityBase, "/"),
	}
}

var dailyPages = map[zodiac.Period]string{
	zodiac.Today:    "/general-diaria-",
	zodiac.Tomorrow: "/general-diaria-manana-",
	zodiac.Weekly:   "/general-semanal-",
}

// DailyURL returns the page for one of the three daily views.
func (r *Resolver) DailyURL(sign zodiac.Sign, period zodiac.Period) (string, error) {
	if !period.Valid() {
		return "", fmt.Errorf("%w: %q", zodiac.ErrInvalidPeriod, string(period))
	}
	return r.HoroscopeBase + dailyPages[period] + url.PathEscape(string(sign)), nil
}

func (r *Resolver) WeeklyURL(sign zodiac.Sign) string {
	return r.HoroscopeBase + "/general-semanal-" + url.PathEscape(string(sign))
}

func (r *Resolver) MonthlyURL(sign zodiac.Sign) string {
	return r.HoroscopeBase + "/mensual-" + url.PathEscape(string(sign))
}

// CompatibilityURL keeps the pair in the order given; upstream texts for
// a-b and b-a are not guaranteed to match.
func (r *Resolver) CompatibilityURL(a, b zodiac.Sign) string {
	return r.CompatibilityBase + "/" + url.PathEscape(string(a)) + "-" + url.PathEscape(string(b))
}

func (r *Resolver) ByDay(ctx context.Context, sign zodiac.Sign, period zodiac.Period) (string, error) {
	u, err := r.DailyURL(sign, period)
	if err != nil {
		return "", err
	}
	return r.Fetcher.FetchAndExtract(ctx, u, scraper.HoroscopeMarker)
}

func (r *Resolver) ByWeek(ctx context.Context, sign zodiac.Sign) (string, error) {
	return r.Fetcher.FetchAndExtract(ctx, r.WeeklyURL(sign), scraper.HoroscopeMarker)
}

func (r *Resolver) ByMonth(ctx context.Context, sign zodiac.Sign) (string, error) {
	return r.Fetcher.FetchAndExtract(ctx, r.MonthlyURL(sign), scraper.HoroscopeMarker)
}

func (r *Resolver) Compatibility(ctx context.Context, a, b zodiac.Sign) (string, error) {
	return r.Fetcher.FetchAndExtract(ctx, r.CompatibilityURL(a, b), scraper.CompatibilityMarker)
}
