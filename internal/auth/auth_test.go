package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHashAndCheckToken(t *testing.T) {
	hash, err := HashToken("s3cret-token", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-token", hash)

	assert.NoError(t, CheckToken("s3cret-token", hash))
	assert.ErrorIs(t, CheckToken("other", hash), ErrInvalidToken)
}

func TestHashToken_Limits(t *testing.T) {
	_, err := HashToken("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = HashToken(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrTokenTooLong)
}

func TestCheckToken_MalformedHash(t *testing.T) {
	err := CheckToken("token", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewMiddleware_DisabledWithoutHash(t *testing.T) {
	assert.Nil(t, NewMiddleware(""))
}

func TestMiddleware_Handler(t *testing.T) {
	hash, err := HashToken("good-token", bcrypt.MinCost)
	require.NoError(t, err)

	router := gin.New()
	router.Use(NewMiddleware(hash).Handler())
	router.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"wrong token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
		{"case-insensitive scheme", "bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
