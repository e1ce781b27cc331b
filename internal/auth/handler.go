package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"zodiacle/pkg/models"
)

// DefaultSubject is the identity every login token is issued for.
const DefaultSubject = "user_id"

type Handler struct {
	Tokens  TokenService
	Subject string
	// PasswordHash, when set, is a bcrypt hash the login password must
	// match. Empty keeps login open to any caller.
	PasswordHash []byte
	Log          *slog.Logger
}

func NewHandler(tokens TokenService, subject string, passwordHash []byte, logger *slog.Logger) *Handler {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Tokens: tokens, Subject: subject, PasswordHash: passwordHash, Log: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.GET("/protected", AuthMiddleware(h.Tokens), h.protected)
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	if len(h.PasswordHash) > 0 {
		var req loginReq
		if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
			unauthorized(c, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword(h.PasswordHash, []byte(req.Password)); err != nil {
			unauthorized(c, "invalid credentials")
			return
		}
	}

	token, exp, err := h.Tokens.Sign(h.Subject)
	if err != nil {
		h.Log.Error("sign token failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "token failed"})
		return
	}

	h.Log.Info("token issued", "subject", h.Subject, "expires_at", exp.UTC())
	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token})
}

func (h *Handler) protected(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		unauthorized(c, "invalid token")
		return
	}
	c.JSON(http.StatusOK, models.ProtectedResponse{
		Message: "This is a protected endpoint.",
		Subject: claims.Subject,
	})
}
