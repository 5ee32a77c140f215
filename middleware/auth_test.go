package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore/repository/repotest"
	"bookstore/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*gin.Engine, *token.Manager, *repotest.Blacklist) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := token.NewManager("test-secret", time.Hour)
	bl := repotest.NewStore().Blacklist()

	r := gin.New()
	r.Use(RequestID())
	auth := r.Group("/", AuthMiddleware(tokens, bl, zerolog.Nop()))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(CtxUserID)})
	})
	auth.GET("/admin", AdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, tokens, bl
}

func get(r *gin.Engine, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens, bl := newEngine(t)

	require.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	require.Equal(t, http.StatusUnauthorized, get(r, "/me", "garbage").Code)

	tok, err := tokens.Issue("64b7f0c2a1b2c3d4e5f60718", "asha", "a@example.com", "user")
	require.NoError(t, err)

	w := get(r, "/me", tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "64b7f0c2a1b2c3d4e5f60718")
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))

	require.NoError(t, bl.Add(context.Background(), tok, time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusUnauthorized, get(r, "/me", tok).Code)
}

func TestAdminMiddleware(t *testing.T) {
	r, tokens, _ := newEngine(t)

	user, err := tokens.Issue("u1", "asha", "a@example.com", "user")
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, get(r, "/admin", user).Code)

	admin, err := tokens.Issue("u2", "root", "r@example.com", "admin")
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, get(r, "/admin", admin).Code)
}
