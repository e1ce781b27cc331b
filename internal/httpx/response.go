package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"zodiacle/internal/scraper"
	"zodiacle/internal/zodiac"
	"zodiacle/pkg/models"
)

const SignNotFoundMessage = "the specified zodiac sign does not exist."

// Error writes {"error": message} with the given status and aborts the chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: message})
}

// RequireQuery returns the trimmed query parameter or writes a 400 and
// reports false when it is missing.
func RequireQuery(c *gin.Context, name string) (string, bool) {
	v, ok := c.GetQuery(name)
	if !ok || len(v) == 0 {
		Error(c, http.StatusBadRequest, fmt.Sprintf("missing required parameter: %s", name))
		return "", false
	}
	return v, true
}

// StatusFor maps a resolver or scraper error onto the HTTP status and the
// message shown to the client.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, scraper.ErrContentNotFound), errors.Is(err, zodiac.ErrUnknownSign):
		return http.StatusNotFound, SignNotFoundMessage
	case errors.Is(err, zodiac.ErrInvalidPeriod):
		return http.StatusBadRequest, fmt.Sprintf("invalid parameter: %v", err)
	default:
		return http.StatusBadRequest, fmt.Sprintf("an error occurred: %v", err)
	}
}

// Fail logs err and writes the mapped error response.
func Fail(c *gin.Context, logger *slog.Logger, err error) {
	status, msg := StatusFor(err)
	var uerr *scraper.UpstreamError
	if errors.As(err, &uerr) {
		logger.Warn("upstream failure",
			"request_id", RequestID(c),
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"upstream_status", uerr.Status,
			"error", err,
		)
	}
	Error(c, status, msg)
}
