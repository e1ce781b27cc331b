package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zodiacle/pkg/models"
)

const CtxClaimsKey = "auth_claims"

// AuthMiddleware rejects requests without a valid bearer token issued by tokens.
func AuthMiddleware(tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="zodiacle"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
