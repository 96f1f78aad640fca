// Package database provides the vocabulary store on SQLite via GORM.
//
// # Schema
//
//	words       # one row per (text, src_lang); enrichment status and suggestions
//	word_forms  # lexems found for a word, with their paradigm JSON
//
// Deleting a word deletes its forms. Foreign keys are enabled on the
// connection and the delete also runs in a transaction, so it holds on
// databases created without the constraint.
//
// # Usage
//
//	db, err := database.NewDatabase("./lexscheduler.db")
//	word := &entities.Word{Text: "cat", SrcLang: 1033, DstLang: 1049}
//	err = db.AddWord(word)
//	pending, err := db.GetPendingWords(0)
//
// The background task queue keeps its own SQLite file next to this one
// (see tasks.TasksDBPath).
package database
