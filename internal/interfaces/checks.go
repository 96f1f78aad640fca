package interfaces

// Compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/lexscheduler/internal/database"
	"github.com/mrlokans/lexscheduler/internal/http"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
	"github.com/mrlokans/lexscheduler/internal/scheduler"
	"github.com/mrlokans/lexscheduler/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.VocabularyStore = (*database.Database)(nil)
var _ tasks.WordEnricher = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ tasks.FormsLookup = (*lingvo.Client)(nil)
var _ http.Dictionary = (*lingvo.Client)(nil)
var _ http.TokenSource = (*lingvo.Client)(nil)

// Request descriptors
var _ lingvo.Request = lingvo.WordForms{}
var _ lingvo.Request = lingvo.Suggests{}
var _ lingvo.Result = (*lingvo.WordFormsResponse)(nil)
var _ lingvo.Result = (*lingvo.SuggestsResponse)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
