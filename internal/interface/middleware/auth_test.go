package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/pkg/token"
)

func guardedRouter(tm *token.Manager, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var mw gin.HandlerFunc
	if role == "" {
		mw = RequireAuth(tm)
	} else {
		mw = RequireRole(tm, role)
	}
	r.GET("/protected", mw, func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": claims.SubjectID, "role": claims.Role})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardMissingToken(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	r := guardedRouter(tm, "")

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"UNAUTHORIZED"}`, w.Body.String())
}

func TestGuardInvalidToken(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	r := guardedRouter(tm, "")

	for _, h := range []string{"Bearer garbage", "Bearer ", "Basic abc", "garbage"} {
		w := doGet(r, h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", h)
		assert.JSONEq(t, `{"error":"UNAUTHORIZED"}`, w.Body.String())
	}
}

func TestGuardExpiredToken(t *testing.T) {
	expired := token.NewManager("secret", -time.Minute)
	raw, _, err := expired.Issue(1, entity.RoleAdmin)
	require.NoError(t, err)

	r := guardedRouter(token.NewManager("secret", time.Hour), "")
	w := doGet(r, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Same body as every other failure: no expiry/signature oracle.
	assert.JSONEq(t, `{"error":"UNAUTHORIZED"}`, w.Body.String())
}

func TestGuardRoleMismatch(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	raw, _, err := tm.Issue(9, entity.RoleCustomer)
	require.NoError(t, err)

	r := guardedRouter(tm, entity.RoleAdmin)
	w := doGet(r, "Bearer "+raw)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"FORBIDDEN"}`, w.Body.String())
}

func TestGuardAttachesClaims(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	raw, _, err := tm.Issue(9, entity.RoleAdmin)
	require.NoError(t, err)

	r := guardedRouter(tm, entity.RoleAdmin)
	w := doGet(r, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":9,"role":"admin"}`, w.Body.String())
}

func TestGuardAnyRole(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	raw, _, err := tm.Issue(3, entity.RoleCustomer)
	require.NoError(t, err)

	r := guardedRouter(tm, "")
	w := doGet(r, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
}
