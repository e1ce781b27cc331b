package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"zodiacle/internal/auth"
	"zodiacle/internal/compatibility"
	"zodiacle/internal/horoscope"
	"zodiacle/internal/httpx"
	"zodiacle/internal/metrics"
	"zodiacle/internal/scraper"
	"zodiacle/internal/zodiac"
	"zodiacle/pkg/utils"
)

// Server wires the configuration into handlers. It holds no per-request
// state, so one instance serves all requests concurrently.
type Server struct {
	Config   utils.Config
	Log      *slog.Logger
	Tokens   auth.TokenService
	Resolver *horoscope.Resolver
	Policy   zodiac.Policy
	Metrics  *metrics.Metrics
}

// New builds a Server whose resolver fetches through fetcher. A nil fetcher
// uses a scraper configured from cfg.Upstream.
func New(cfg utils.Config, logger *slog.Logger, fetcher scraper.Fetcher) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	policy, err := zodiac.ParsePolicy(cfg.SignPolicy)
	if err != nil {
		logger.Warn("unknown sign policy, using passthrough", "policy", cfg.SignPolicy, "error", err)
		policy = zodiac.PolicyPassthrough
	}

	m := metrics.New()
	if fetcher == nil {
		fetcher = scraper.New(scraper.Options{
			Timeout:   cfg.Upstream.Timeout,
			UserAgent: cfg.Upstream.UserAgent,
			Recorder:  m,
		})
	}

	return &Server{
		Config: cfg,
		Log:    logger,
		Tokens: auth.TokenService{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Issuer:   cfg.Auth.JWTIssuer,
			Duration: cfg.Auth.JWTDuration,
		},
		Resolver: horoscope.NewResolver(fetcher, cfg.Upstream.HoroscopeBaseURL, cfg.Upstream.CompatibilityBaseURL),
		Policy:   policy,
		Metrics:  m,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpx.RequestIDMiddleware())
	router.Use(httpx.LoggingMiddleware(s.Log))
	router.Use(s.Metrics.Middleware())
	router.Use(httpx.CORS(s.Config.CORSOrigins))
	router.NoRoute(httpx.NotFound)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(s.Metrics.Handler()))

	api := router.Group(s.Config.APIPrefix)

	authHandler := auth.NewHandler(s.Tokens, s.Config.Auth.Subject, []byte(s.Config.Auth.PasswordHash), s.Log)
	authHandler.RegisterRoutes(api.Group("/auth"))

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.AuthMiddleware(s.Tokens))

	horoscopeHandler := horoscope.NewHandler(s.Resolver, s.Policy, s.Log)
	horoscopeHandler.RegisterRoutes(protected.Group("/horoscopes"))

	compatHandler := compatibility.NewHandler(s.Resolver, s.Policy, s.Log)
	compatHandler.RegisterRoutes(protected.Group("/compatibility"))

	return router
}
