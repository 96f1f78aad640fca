package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/lexscheduler/internal/entities"
)

// ErrWordNotFound is returned when a word does not exist.
var ErrWordNotFound = errors.New("word not found")

// AddWord creates a new vocabulary word entry.
func (d *Database) AddWord(word *entities.Word) error {
	word.Text = strings.TrimSpace(word.Text)
	if word.Status == "" {
		word.Status = entities.WordStatusPending
	}
	return d.DB.Create(word).Error
}

// GetWordByID retrieves a word with its forms.
func (d *Database) GetWordByID(id uint) (*entities.Word, error) {
	var word entities.Word
	err := d.DB.Preload("Forms").First(&word, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// FindWord looks a word up by its text and source language.
func (d *Database) FindWord(text string, srcLang int) (*entities.Word, error) {
	var word entities.Word
	err := d.DB.Preload("Forms").
		Where("LOWER(text) = LOWER(?) AND src_lang = ?", strings.TrimSpace(text), srcLang).
		First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// ListWords returns words with pagination, optionally filtered by status.
func (d *Database) ListWords(status entities.WordStatus, limit, offset int) ([]entities.Word, int64, error) {
	var words []entities.Word
	var total int64

	query := d.DB.Model(&entities.Word{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = d.DB.Preload("Forms").Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&words).Error
	return words, total, err
}

// GetPendingWords returns words awaiting enrichment, oldest first.
func (d *Database) GetPendingWords(limit int) ([]entities.Word, error) {
	var words []entities.Word
	query := d.DB.Where("status = ?", entities.WordStatusPending).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&words).Error
	return words, err
}

// SaveForms replaces the forms of a word.
func (d *Database) SaveForms(wordID uint, forms []entities.WordForm) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", wordID).Delete(&entities.WordForm{}).Error; err != nil {
			return err
		}

		for i := range forms {
			forms[i].WordID = wordID
			forms[i].ID = 0
			if err := tx.Create(&forms[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveSuggestions stores spelling suggestions for a word.
func (d *Database) SaveSuggestions(wordID uint, suggestions []string) error {
	return d.DB.Model(&entities.Word{}).
		Where("id = ?", wordID).
		Update("suggestions", strings.Join(suggestions, ",")).Error
}

// UpdateWordStatus updates the enrichment status of a word.
func (d *Database) UpdateWordStatus(id uint, status entities.WordStatus, errorMsg string) error {
	return d.DB.Model(&entities.Word{}).Where("id = ?", id).Updates(map[string]any{
		"status":           status,
		"enrichment_error": errorMsg,
	}).Error
}

// ResetWord marks a word pending again so it is picked up by the next enrichment.
func (d *Database) ResetWord(id uint) error {
	return d.UpdateWordStatus(id, entities.WordStatusPending, "")
}

// DeleteWord removes a word and its forms.
func (d *Database) DeleteWord(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", id).Delete(&entities.WordForm{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Word{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWordNotFound
		}
		return nil
	})
}

// VocabularyStats summarizes the vocabulary by status.
type VocabularyStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Enriched int64 `json:"enriched"`
	Failed   int64 `json:"failed"`
}

// GetVocabularyStats counts words per status.
func (d *Database) GetVocabularyStats() (VocabularyStats, error) {
	var rows []struct {
		Status entities.WordStatus
		Count  int64
	}
	err := d.DB.Model(&entities.Word{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return VocabularyStats{}, err
	}

	var stats VocabularyStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case entities.WordStatusPending:
			stats.Pending = row.Count
		case entities.WordStatusEnriched:
			stats.Enriched = row.Count
		case entities.WordStatusFailed:
			stats.Failed = row.Count
		}
	}
	return stats, nil
}
