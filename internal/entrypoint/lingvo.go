package entrypoint

import (
	"context"
	"log"

	"github.com/mrlokans/lexscheduler/internal/config"
	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
)

// LingvoConfig maps application settings onto client settings.
func LingvoConfig(cfg *config.Config) lingvo.Config {
	return lingvo.Config{
		APIKey:      cfg.Lingvo.APIKey,
		BaseURL:     cfg.Lingvo.APIURL,
		AuthURL:     cfg.Lingvo.AuthURL,
		Timeout:     cfg.Lingvo.Timeout,
		LogRequests: cfg.Lingvo.LogRequests,
	}
}

// NewLingvoClient creates an authenticated client from application settings.
func NewLingvoClient(ctx context.Context, cfg *config.Config) (*lingvo.Client, error) {
	return lingvo.New(ctx, LingvoConfig(cfg))
}

// DefaultLangs returns the configured language pair. Unknown codes fall back
// to English and Russian.
func DefaultLangs(cfg *config.Config) (src, dst lang.Lang) {
	src, ok := lang.ByCode(cfg.Languages.Source)
	if !ok {
		log.Printf("WARNING: unknown DEFAULT_SRC_LANG %d, using %s", cfg.Languages.Source, lang.EN.Name)
		src = lang.EN
	}
	dst, ok = lang.ByCode(cfg.Languages.Destination)
	if !ok {
		log.Printf("WARNING: unknown DEFAULT_DST_LANG %d, using %s", cfg.Languages.Destination, lang.RU.Name)
		dst = lang.RU
	}
	return src, dst
}
