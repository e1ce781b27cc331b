package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Class markers of the container holding the text we extract.
const (
	HoroscopeMarker     = "horoscope-box"
	CompatibilityMarker = "text-block"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher fetches one page and extracts the text of the first paragraph
// inside the first element carrying the marker class.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, pageURL, marker string) (string, error)
}

// Recorder receives one observation per fetch. It is satisfied by
// metrics.Upstream; nil disables recording.
type Recorder interface {
	ObserveScrape(marker, outcome string, elapsed time.Duration)
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	Recorder  Recorder
}

// Scraper is safe for concurrent use; every call is an independent request
// with no retry and no caching.
type Scraper struct {
	Client   *resty.Client
	Recorder Recorder
}

func New(opts Options) *Scraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml")
	client.SetRetryCount(0)

	return &Scraper{Client: client, Recorder: opts.Recorder}
}

func (s *Scraper) FetchAndExtract(ctx context.Context, pageURL, marker string) (string, error) {
	start := time.Now()
	text, outcome, err := s.fetch(ctx, pageURL, marker)
	if s.Recorder != nil {
		s.Recorder.ObserveScrape(marker, outcome, time.Since(start))
	}
	return text, err
}

func (s *Scraper) fetch(ctx context.Context, pageURL, marker string) (string, string, error) {
	resp, err := s.Client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", OutcomeNetwork, &UpstreamError{Err: stripURL(err)}
	}
	if !resp.IsSuccess() {
		code := resp.StatusCode()
		// a missing upstream page means the sign (or pair) does not exist
		if code == http.StatusNotFound || code == http.StatusGone {
			return "", OutcomeNotFound, &UpstreamError{Status: code, Err: ErrContentNotFound}
		}
		return "", OutcomeStatus, &UpstreamError{Status: code, Err: ErrBadStatus}
	}

	text, err := Extract(resp.Body(), marker)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			return "", OutcomeNotFound, &UpstreamError{Err: err}
		}
		return "", OutcomeParse, &UpstreamError{Err: err}
	}
	return text, OutcomeOK, nil
}

// Extract parses body as HTML and returns the trimmed text of the first <p>
// under the first element whose class list contains marker.
func Extract(body []byte, marker string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	box := doc.Find("." + marker).First()
	if box.Length() == 0 {
		return "", ErrContentNotFound
	}

	p := box.Find("p").First()
	if p.Length() == 0 {
		return "", ErrContentNotFound
	}

	text := strings.TrimSpace(p.Text())
	if text == "" {
		return "", ErrContentNotFound
	}
	return text, nil
}

// stripURL drops the request URL from transport errors so callers can show
// the message without exposing upstream addresses.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
