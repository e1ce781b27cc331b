package compatibility

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"zodiacle/internal/horoscope"
	"zodiacle/internal/httpx"
	"zodiacle/internal/zodiac"
	"zodiacle/pkg/models"
)

type Handler struct {
	Resolver *horoscope.Resolver
	Policy   zodiac.Policy
	Log      *slog.Logger
}

func NewHandler(resolver *horoscope.Resolver, policy zodiac.Policy, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Resolver: resolver, Policy: policy, Log: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/signs", h.signs) // GET /compatibility/signs?sign_a=&sign_b=
}

func (h *Handler) signs(c *gin.Context) {
	rawA, ok := httpx.RequireQuery(c, "sign_a")
	if !ok {
		return
	}
	rawB, ok := httpx.RequireQuery(c, "sign_b")
	if !ok {
		return
	}

	a, err := h.Policy.ParseSign(rawA)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	b, err := h.Policy.ParseSign(rawB)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	text, err := h.Resolver.Compatibility(c.Request.Context(), a, b)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCompatibilityEnvelope(text))
}
