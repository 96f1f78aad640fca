package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/lexscheduler/internal/entities"
	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
)

const noFormsMessage = "no word forms found"

// WordEnricher defines the store operations needed for word enrichment.
type WordEnricher interface {
	GetWordByID(id uint) (*entities.Word, error)
	GetPendingWords(limit int) ([]entities.Word, error)
	SaveForms(wordID uint, forms []entities.WordForm) error
	SaveSuggestions(wordID uint, suggestions []string) error
	UpdateWordStatus(id uint, status entities.WordStatus, errorMsg string) error
}

// FormsLookup is the subset of the Lingvo client used by enrichment.
type FormsLookup interface {
	GetWordForms(ctx context.Context, text string, l lang.Lang) (*lingvo.WordFormsResponse, error)
	GetSuggests(ctx context.Context, text string, src, dst lang.Lang) (*lingvo.SuggestsResponse, error)
}

// EnrichWordTask fetches the word forms of a single vocabulary word.
type EnrichWordTask struct {
	WordID uint `json:"word_id"`
}

func (t EnrichWordTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_word",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichWordProcessor creates a processor for word enrichment. Transport and
// decode failures are returned so the queue retries them; a word the
// dictionary does not know is marked failed without a retry.
func EnrichWordProcessor(store WordEnricher, lookup FormsLookup) backlite.QueueProcessor[EnrichWordTask] {
	return func(ctx context.Context, task EnrichWordTask) error {
		word, err := store.GetWordByID(task.WordID)
		if err != nil {
			return fmt.Errorf("get word %d: %w", task.WordID, err)
		}
		return enrichWord(ctx, store, lookup, word)
	}
}

func NewEnrichWordQueue(store WordEnricher, lookup FormsLookup) backlite.Queue {
	return backlite.NewQueue(EnrichWordProcessor(store, lookup))
}

// EnrichAllPendingWordsTask enriches all words with pending status.
type EnrichAllPendingWordsTask struct{}

func (t EnrichAllPendingWordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_all_words",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func EnrichAllPendingWordsProcessor(store WordEnricher, lookup FormsLookup) backlite.QueueProcessor[EnrichAllPendingWordsTask] {
	return func(ctx context.Context, task EnrichAllPendingWordsTask) error {
		words, err := store.GetPendingWords(0) // 0 = no limit
		if err != nil {
			return fmt.Errorf("get pending words: %w", err)
		}

		var enriched, failed int
		for i := range words {
			select {
			case <-ctx.Done():
				log.Printf("[TASK] Context cancelled, enriched %d words, %d failed", enriched, failed)
				return ctx.Err()
			default:
			}

			if err := enrichWord(ctx, store, lookup, &words[i]); err != nil {
				failed++
				continue
			}
			if words[i].Status == entities.WordStatusFailed {
				failed++
				continue
			}
			enriched++
		}

		log.Printf("[TASK] Enriched %d words, %d failed out of %d total", enriched, failed, len(words))
		return nil
	}
}

func NewEnrichAllPendingWordsQueue(store WordEnricher, lookup FormsLookup) backlite.Queue {
	return backlite.NewQueue(EnrichAllPendingWordsProcessor(store, lookup))
}

// enrichWord looks up the forms of word and records the outcome. word.Status
// reflects the stored status on return.
func enrichWord(ctx context.Context, store WordEnricher, lookup FormsLookup, word *entities.Word) error {
	src := lang.ByCodeOr(word.SrcLang, lang.EN)
	dst := lang.ByCodeOr(word.DstLang, lang.RU)

	resp, err := lookup.GetWordForms(ctx, word.Text, src)
	if err != nil {
		markFailed(store, word, err.Error())
		return fmt.Errorf("lookup word %q: %w", word.Text, err)
	}

	if remoteErr := resp.Err(); remoteErr != nil && !lingvo.IsNotFound(remoteErr) {
		markFailed(store, word, remoteErr.Error())
		return fmt.Errorf("lookup word %q: %w", word.Text, remoteErr)
	}

	if resp.Err() != nil || len(resp.LexemModels) == 0 {
		saveSuggestions(ctx, store, lookup, word, src, dst)
		markFailed(store, word, noFormsMessage)
		log.Printf("[TASK] No word forms for %q", word.Text)
		return nil
	}

	forms, err := toWordForms(word.ID, resp.LexemModels)
	if err != nil {
		markFailed(store, word, err.Error())
		return err
	}

	if err := store.SaveForms(word.ID, forms); err != nil {
		return fmt.Errorf("save forms for word %d: %w", word.ID, err)
	}

	if err := store.UpdateWordStatus(word.ID, entities.WordStatusEnriched, ""); err != nil {
		return fmt.Errorf("update word status: %w", err)
	}
	word.Status = entities.WordStatusEnriched

	log.Printf("[TASK] Enriched word %q with %d lexems", word.Text, len(forms))
	return nil
}

// saveSuggestions is best effort; a failed suggests lookup leaves the word's
// suggestions untouched.
func saveSuggestions(ctx context.Context, store WordEnricher, lookup FormsLookup, word *entities.Word, src, dst lang.Lang) {
	resp, err := lookup.GetSuggests(ctx, word.Text, src, dst)
	if err != nil {
		log.Printf("[TASK] Suggests for %q failed: %v", word.Text, err)
		return
	}
	if resp.Err() != nil || len(resp.Suggests) == 0 {
		return
	}
	if err := store.SaveSuggestions(word.ID, resp.Suggests); err != nil {
		log.Printf("[TASK] Failed to save suggestions for word %d: %v", word.ID, err)
		return
	}
	word.Suggestions = strings.Join(resp.Suggests, ",")
}

func markFailed(store WordEnricher, word *entities.Word, msg string) {
	if err := store.UpdateWordStatus(word.ID, entities.WordStatusFailed, msg); err != nil {
		log.Printf("[TASK] Failed to update word status: %v", err)
		return
	}
	word.Status = entities.WordStatusFailed
	word.EnrichmentError = msg
}

func toWordForms(wordID uint, models []lingvo.LexemModel) ([]entities.WordForm, error) {
	forms := make([]entities.WordForm, 0, len(models))
	for _, m := range models {
		paradigm, err := json.Marshal(m.Paradigm)
		if err != nil {
			return nil, fmt.Errorf("encode paradigm of %q: %w", m.Lexem, err)
		}
		forms = append(forms, entities.WordForm{
			WordID:       wordID,
			Lexem:        m.Lexem,
			PartOfSpeech: m.PartOfSpeech,
			Forms:        strings.Join(m.Paradigm.Forms(), ","),
			Paradigm:     string(paradigm),
		})
	}
	return forms, nil
}
