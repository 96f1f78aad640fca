package http

import (
	"github.com/mrlokans/lexscheduler/internal/database"
	"github.com/mrlokans/lexscheduler/internal/lang"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database        *database.Database
	VocabularyStore VocabularyStore

	// Lingvo client; lookup endpoints are not registered when nil
	Dictionary Dictionary

	// Task queue (optional)
	TaskQueue TaskQueue

	// Languages used when a request does not name one
	DefaultSource      lang.Lang
	DefaultDestination lang.Lang

	// bcrypt hash of the API token; empty disables auth
	APITokenHash string

	// Application info
	Version string
}
