package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	marker  string
	outcome string
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []recorded
}

func (r *fakeRecorder) ObserveScrape(marker, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, recorded{marker, outcome})
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		marker  string
		want    string
		wantErr error
	}{
		{
			name:   "first paragraph of box",
			html:   `<html><body><div class="horoscope-box"><p> Hoy es tu día. </p><p>second</p></div></body></html>`,
			marker: HoroscopeMarker,
			want:   "Hoy es tu día.",
		},
		{
			name:   "marker among several classes",
			html:   `<div class="main text-block wide"><h2>Leo y Virgo</h2><p>Se complementan.</p></div>`,
			marker: CompatibilityMarker,
			want:   "Se complementan.",
		},
		{
			name:   "only first box counts",
			html:   `<div class="horoscope-box"><p>uno</p></div><div class="horoscope-box"><p>dos</p></div>`,
			marker: HoroscopeMarker,
			want:   "uno",
		},
		{
			name:   "nested text is joined",
			html:   `<div class="horoscope-box"><section><p>Amor <b>y</b> salud</p></section></div>`,
			marker: HoroscopeMarker,
			want:   "Amor y salud",
		},
		{
			name:    "no container",
			html:    `<div class="other"><p>nope</p></div>`,
			marker:  HoroscopeMarker,
			wantErr: ErrContentNotFound,
		},
		{
			name:    "container without paragraph",
			html:    `<div class="horoscope-box"><span>text</span></div>`,
			marker:  HoroscopeMarker,
			wantErr: ErrContentNotFound,
		},
		{
			name:    "empty paragraph",
			html:    `<div class="horoscope-box"><p>   </p></div>`,
			marker:  HoroscopeMarker,
			wantErr: ErrContentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(tt.html), tt.marker)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchAndExtract(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`<div class="horoscope-box"><p>Sorpresas.</p></div>`))
		case "/empty":
			w.Write([]byte(`<html><body></body></html>`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<html><body><h1>Página no encontrada</h1></body></html>`))
		case "/removed":
			w.WriteHeader(http.StatusGone)
		default:
			http.Error(w, "gone", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	s := New(Options{Timeout: 2 * time.Second, Recorder: rec})
	ctx := context.Background()

	text, err := s.FetchAndExtract(ctx, srv.URL+"/ok", HoroscopeMarker)
	require.NoError(t, err)
	assert.Equal(t, "Sorpresas.", text)

	_, err = s.FetchAndExtract(ctx, srv.URL+"/empty", HoroscopeMarker)
	require.ErrorIs(t, err, ErrContentNotFound)
	var uerr *UpstreamError
	require.True(t, errors.As(err, &uerr))

	_, err = s.FetchAndExtract(ctx, srv.URL+"/down", HoroscopeMarker)
	require.ErrorIs(t, err, ErrBadStatus)
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, http.StatusServiceUnavailable, uerr.Status)
	assert.False(t, errors.Is(err, ErrContentNotFound))

	for _, p := range []string{"/missing", "/removed"} {
		_, err = s.FetchAndExtract(ctx, srv.URL+p, CompatibilityMarker)
		require.ErrorIs(t, err, ErrContentNotFound, p)
		assert.False(t, errors.Is(err, ErrBadStatus), p)
		require.True(t, errors.As(err, &uerr))
		assert.NotZero(t, uerr.Status)
	}

	// one request per call, no retries
	assert.Equal(t, 5, hits)
	assert.Equal(t, []recorded{
		{HoroscopeMarker, OutcomeOK},
		{HoroscopeMarker, OutcomeNotFound},
		{HoroscopeMarker, OutcomeStatus},
		{CompatibilityMarker, OutcomeNotFound},
		{CompatibilityMarker, OutcomeNotFound},
	}, rec.obs)
}

func TestFetchAndExtractNetworkErrorHidesURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s := New(Options{Timeout: time.Second})
	_, err := s.FetchAndExtract(context.Background(), addr+"/secret-path", HoroscopeMarker)
	require.Error(t, err)

	var uerr *UpstreamError
	require.True(t, errors.As(err, &uerr))
	assert.Zero(t, uerr.Status)
	assert.False(t, strings.Contains(err.Error(), "secret-path"), err.Error())
}
