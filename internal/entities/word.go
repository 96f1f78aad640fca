package entities

import "time"

// WordStatus tracks whether a word has been enriched with its forms.
type WordStatus string

const (
	WordStatusPending  WordStatus = "pending"
	WordStatusEnriched WordStatus = "enriched"
	WordStatusFailed   WordStatus = "failed"
)

// Word is a vocabulary entry the user wants to learn.
type Word struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Text string `gorm:"type:varchar(255);not null;uniqueIndex:idx_word_text_lang" json:"text"`

	// SrcLang and DstLang are Lingvo language codes (e.g. 1033 for English)
	SrcLang int `gorm:"not null;uniqueIndex:idx_word_text_lang" json:"src_lang"`
	DstLang int `gorm:"not null" json:"dst_lang"`

	Status          WordStatus `gorm:"type:varchar(20);default:pending;index" json:"status"`
	EnrichmentError string     `gorm:"type:text" json:"enrichment_error,omitempty"`

	// Suggestions holds spelling suggestions, comma separated, when no forms were found
	Suggestions string `gorm:"type:text" json:"suggestions,omitempty"`

	Forms []WordForm `gorm:"constraint:OnDelete:CASCADE" json:"forms,omitempty"`
}

// TableName specifies the table name for GORM
func (Word) TableName() string {
	return "words"
}

// WordForm is one lexem returned by the WordForms lookup.
type WordForm struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	WordID       uint   `gorm:"index;not null" json:"word_id"`
	Lexem        string `gorm:"type:varchar(255)" json:"lexem"`
	PartOfSpeech string `gorm:"type:varchar(50)" json:"part_of_speech"`

	// Forms is the comma-separated list of inflected forms
	Forms string `gorm:"type:text" json:"forms"`

	// Paradigm is the raw paradigm JSON as returned by the API
	Paradigm string `gorm:"type:text" json:"paradigm,omitempty"`
}

// TableName specifies the table name for GORM
func (WordForm) TableName() string {
	return "word_forms"
}
