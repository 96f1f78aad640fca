package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
)

// Dictionary is the subset of the Lingvo client served over HTTP.
type Dictionary interface {
	GetWordForms(ctx context.Context, text string, l lang.Lang) (*lingvo.WordFormsResponse, error)
	GetSuggests(ctx context.Context, text string, src, dst lang.Lang) (*lingvo.SuggestsResponse, error)
}

// LookupController passes dictionary lookups through to Lingvo.
type LookupController struct {
	dict       Dictionary
	defaultSrc lang.Lang
	defaultDst lang.Lang
}

func NewLookupController(dict Dictionary, defaultSrc, defaultDst lang.Lang) *LookupController {
	return &LookupController{
		dict:       dict,
		defaultSrc: defaultSrc,
		defaultDst: defaultDst,
	}
}

// WordForms handles GET /api/lookup/wordforms?text=&lang=
func (lc *LookupController) WordForms(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		respondBadRequest(c, "text is required")
		return
	}
	l, ok := parseLangQuery(c, "lang", lc.defaultSrc)
	if !ok {
		return
	}

	resp, err := lc.dict.GetWordForms(c.Request.Context(), text, l)
	respondLookup(c, resp, err)
}

// Suggests handles GET /api/lookup/suggests?text=&src=&dst=
func (lc *LookupController) Suggests(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		respondBadRequest(c, "text is required")
		return
	}
	src, ok := parseLangQuery(c, "src", lc.defaultSrc)
	if !ok {
		return
	}
	dst, ok := parseLangQuery(c, "dst", lc.defaultDst)
	if !ok {
		return
	}

	resp, err := lc.dict.GetSuggests(c.Request.Context(), text, src, dst)
	respondLookup(c, resp, err)
}

// respondLookup writes a lookup result. Remote errors keep their status and
// carry the envelope as details; local failures become 502 or 504.
func respondLookup(c *gin.Context, result lingvo.Result, err error) {
	if err != nil {
		log.Printf("[LINGVO] lookup failed: %v", err)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "dictionary timed out", Code: "lingvo_timeout"})
		case lingvo.IsTransportError(err):
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "dictionary unreachable", Code: "lingvo_unreachable"})
		default:
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: "lingvo_error"})
		}
		return
	}

	envelope := result.Envelope()
	if remoteErr := envelope.Err(); remoteErr != nil {
		status := envelope.Code
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, ErrorResponse{Error: remoteErr.Error(), Code: "lingvo_remote", Details: envelope})
		return
	}

	c.JSON(http.StatusOK, result)
}
