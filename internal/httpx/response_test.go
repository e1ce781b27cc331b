package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zodiacle/internal/scraper"
	"zodiacle/internal/zodiac"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "content not found",
			err:        &scraper.UpstreamError{Err: scraper.ErrContentNotFound},
			wantStatus: http.StatusNotFound,
			wantMsg:    SignNotFoundMessage,
		},
		{
			name:       "upstream page missing",
			err:        &scraper.UpstreamError{Status: http.StatusNotFound, Err: scraper.ErrContentNotFound},
			wantStatus: http.StatusNotFound,
			wantMsg:    SignNotFoundMessage,
		},
		{
			name:       "strict unknown sign",
			err:        fmt.Errorf("%w: %q", zodiac.ErrUnknownSign, "ofiuco"),
			wantStatus: http.StatusNotFound,
			wantMsg:    SignNotFoundMessage,
		},
		{
			name:       "bad period",
			err:        fmt.Errorf("%w: %q", zodiac.ErrInvalidPeriod, "ayer"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    `invalid parameter: invalid period: "ayer"`,
		},
		{
			name:       "upstream status",
			err:        &scraper.UpstreamError{Status: 502, Err: scraper.ErrBadStatus},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "an error occurred: upstream: unexpected status 502",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "an error occurred: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(headerRequestID))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
