package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexscheduler/internal/lang"
)

// LangInfo describes a supported language.
type LangInfo struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

// ListLangs handles GET /api/langs
func ListLangs(c *gin.Context) {
	all := lang.All()
	langs := make([]LangInfo, len(all))
	for i, l := range all {
		langs[i] = LangInfo{Name: l.Name, Code: l.Code}
	}
	c.JSON(http.StatusOK, gin.H{"langs": langs})
}
