package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/playtrove/gamestore/pkg/response"
	"github.com/playtrove/gamestore/pkg/token"
)

const ctxClaimsKey = "authClaims"

// RequireAuth verifies the Authorization bearer token and stores the claims
// in the request context. Any verification failure is a uniform 401; the
// response never says whether the token was missing, malformed, tampered
// with, or expired.
func RequireAuth(tm *token.Manager) gin.HandlerFunc {
	return guard(tm, "")
}

// RequireRole is RequireAuth plus an exact role match; a valid token with a
// different role gets 403.
func RequireRole(tm *token.Manager, role string) gin.HandlerFunc {
	return guard(tm, role)
}

func guard(tm *token.Manager, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.CodeUnauthorized)
			return
		}
		claims, err := tm.Verify(raw)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.CodeUnauthorized)
			return
		}
		if role != "" && claims.Role != role {
			response.AbortFail(c, http.StatusForbidden, response.CodeForbidden)
			return
		}
		c.Set(ctxClaimsKey, *claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// ClaimsFrom returns the verified claims attached by the guard. Handlers
// read identity from here, never from headers.
func ClaimsFrom(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}
