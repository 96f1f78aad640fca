package lingvo

import (
	"context"
	"net/url"

	"github.com/mrlokans/lexscheduler/internal/lang"
)

// Suggests requests spelling suggestions for text in a language pair.
// The endpoint answers with a bare array of strings.
type Suggests struct {
	Text    string
	SrcLang lang.Lang
	DstLang lang.Lang
}

func (r Suggests) Method() string { return "Suggests" }

func (r Suggests) Params() Params {
	return Params{}.
		Add("text", url.QueryEscape(r.Text)).
		Add("srcLang", r.SrcLang).
		Add("dstLang", r.DstLang)
}

func (r Suggests) WrapKey() string { return "suggests" }

func (r Suggests) NewResult() Result { return &SuggestsResponse{} }

// SuggestsResponse is the decoded result of Suggests.
type SuggestsResponse struct {
	Response
	Suggests []string `json:"suggests"`
}

// GetSuggests returns spelling suggestions for text.
func (c *Client) GetSuggests(ctx context.Context, text string, src, dst lang.Lang) (*SuggestsResponse, error) {
	return Do[*SuggestsResponse](ctx, c, Suggests{Text: text, SrcLang: src, DstLang: dst})
}
