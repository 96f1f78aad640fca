// Package interfaces documents the seams between packages and holds their
// compile-time implementation checks.
//
// # Data Access Interfaces
//
//   - http.VocabularyStore: word management for the JSON API
//   - tasks.WordEnricher: the store side of word enrichment
//
// # External Service Interfaces
//
//   - tasks.FormsLookup: word forms and suggestions for enrichment
//   - http.Dictionary: lookup pass-through endpoints
//   - http.TokenSource: Lingvo token presence for /health
//
// # Background Work
//
//   - http.TaskQueue: enqueue enrichment and report task status
//   - scheduler.Enqueuer: periodic enrichment
//
// # Adding a New Lingvo Method
//
//  1. Describe it in internal/lingvo as a Request:
//
//     type Translation struct {
//         Text             string
//         SrcLang, DstLang lang.Lang
//     }
//
//     func (r Translation) Method() string     { return "Translation" }
//     func (r Translation) Params() Params     { ... }
//     func (r Translation) WrapKey() string    { return "articles" }
//     func (r Translation) NewResult() Result  { return &TranslationResponse{} }
//
//  2. Add a typed helper using Do[*TranslationResponse].
//
//  3. Extend Dictionary in internal/http and add a check to checks.go.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
