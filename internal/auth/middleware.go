package auth

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Middleware checks Bearer tokens against a bcrypt hash.
type Middleware struct {
	hash string

	// bcrypt is slow on purpose; remember the last accepted token.
	mu       sync.RWMutex
	accepted string
}

// NewMiddleware returns nil when hash is empty, meaning auth is disabled.
func NewMiddleware(hash string) *Middleware {
	if hash == "" {
		return nil
	}
	return &Middleware{hash: hash}
}

// Handler returns the gin middleware. Requests without a valid token get 401.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		if !m.valid(token) {
			log.Printf("[AUTH] Rejected API token from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		c.Next()
	}
}

func (m *Middleware) valid(token string) bool {
	m.mu.RLock()
	cached := m.accepted
	m.mu.RUnlock()
	if cached != "" && cached == token {
		return true
	}

	if err := CheckToken(token, m.hash); err != nil {
		return false
	}

	m.mu.Lock()
	m.accepted = token
	m.mu.Unlock()
	return true
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
