package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/lexscheduler/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// TokenSource reports the current Lingvo access token.
type TokenSource interface {
	Token() string
}

type HealthController struct {
	db      *database.Database
	tokens  TokenSource
	version string
}

func NewHealthController(db *database.Database, tokens TokenSource, version string) *HealthController {
	return &HealthController{
		db:      db,
		tokens:  tokens,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// A missing token is reported but does not fail the check; it is
	// refreshed on the next rejected call.
	switch {
	case h.tokens == nil:
		checks["lingvo"] = "not configured"
	case h.tokens.Token() == "":
		checks["lingvo"] = "no token"
	default:
		checks["lingvo"] = "ok"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
