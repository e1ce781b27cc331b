package horoscope

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"zodiacle/internal/httpx"
	"zodiacle/internal/zodiac"
	"zodiacle/pkg/models"
)

type Handler struct {
	Resolver *Resolver
	Policy   zodiac.Policy
	Log      *slog.Logger
}

func NewHandler(resolver *Resolver, policy zodiac.Policy, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Resolver: resolver, Policy: policy, Log: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/daily", h.daily)     // GET /horoscopes/daily?sign=&day=
	rg.GET("/weekly", h.weekly)   // GET /horoscopes/weekly?sign=
	rg.GET("/monthly", h.monthly) // GET /horoscopes/monthly?sign=
}

func (h *Handler) daily(c *gin.Context) {
	rawSign, ok := httpx.RequireQuery(c, "sign")
	if !ok {
		return
	}
	rawDay, ok := httpx.RequireQuery(c, "day")
	if !ok {
		return
	}

	sign, err := h.Policy.ParseSign(rawSign)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	period, err := zodiac.ParsePeriod(rawDay)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	text, err := h.Resolver.ByDay(c.Request.Context(), sign, period)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewEnvelope(text))
}

func (h *Handler) weekly(c *gin.Context) {
	sign, ok := h.sign(c)
	if !ok {
		return
	}
	text, err := h.Resolver.ByWeek(c.Request.Context(), sign)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewEnvelope(text))
}

func (h *Handler) monthly(c *gin.Context) {
	sign, ok := h.sign(c)
	if !ok {
		return
	}
	text, err := h.Resolver.ByMonth(c.Request.Context(), sign)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewEnvelope(text))
}

func (h *Handler) sign(c *gin.Context) (zodiac.Sign, bool) {
	raw, ok := httpx.RequireQuery(c, "sign")
	if !ok {
		return "", false
	}
	sign, err := h.Policy.ParseSign(raw)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return "", false
	}
	return sign, true
}
