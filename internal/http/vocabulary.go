package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexscheduler/internal/database"
	"github.com/mrlokans/lexscheduler/internal/entities"
	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/mrlokans/lexscheduler/internal/tasks"
)

// VocabularyStore defines database operations for vocabulary management.
type VocabularyStore interface {
	AddWord(word *entities.Word) error
	GetWordByID(id uint) (*entities.Word, error)
	FindWord(text string, srcLang int) (*entities.Word, error)
	ListWords(status entities.WordStatus, limit, offset int) ([]entities.Word, int64, error)
	ResetWord(id uint) error
	DeleteWord(id uint) error
	GetVocabularyStats() (database.VocabularyStats, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

type VocabularyController struct {
	store      VocabularyStore
	queue      TaskQueue
	defaultSrc lang.Lang
	defaultDst lang.Lang
}

func NewVocabularyController(store VocabularyStore, queue TaskQueue, defaultSrc, defaultDst lang.Lang) *VocabularyController {
	return &VocabularyController{
		store:      store,
		queue:      queue,
		defaultSrc: defaultSrc,
		defaultDst: defaultDst,
	}
}

// AddWordRequest is the request body for adding a word.
// Languages are Lingvo codes, as a number or a string.
type AddWordRequest struct {
	Text       string    `json:"text" binding:"required"`
	SrcLang    lang.Lang `json:"src_lang"`
	DstLang    lang.Lang `json:"dst_lang"`
	AutoEnrich bool      `json:"auto_enrich,omitempty"`
}

// ListWords returns paginated vocabulary list.
// GET /api/vocabulary
func (vc *VocabularyController) ListWords(c *gin.Context) {
	limit, offset := parsePagination(c)

	status := entities.WordStatus(c.Query("status"))
	switch status {
	case "", entities.WordStatusPending, entities.WordStatusEnriched, entities.WordStatusFailed:
	default:
		respondBadRequest(c, "invalid status")
		return
	}

	words, total, err := vc.store.ListWords(status, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list words")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    words,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(words)) < total,
	})
}

// AddWord creates a new vocabulary word.
// POST /api/vocabulary
func (vc *VocabularyController) AddWord(c *gin.Context) {
	var req AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondBadRequest(c, "text is required")
		return
	}

	src, dst := req.SrcLang, req.DstLang
	if src.IsZero() {
		src = vc.defaultSrc
	}
	if dst.IsZero() {
		dst = vc.defaultDst
	}

	existing, err := vc.store.FindWord(text, src.Code)
	if err != nil && !errors.Is(err, database.ErrWordNotFound) {
		respondInternalError(c, err, "find word")
		return
	}
	if existing != nil {
		respondError(c, http.StatusConflict, "word already exists")
		return
	}

	word := &entities.Word{
		Text:    text,
		SrcLang: src.Code,
		DstLang: dst.Code,
		Status:  entities.WordStatusPending,
	}
	if err := vc.store.AddWord(word); err != nil {
		respondInternalError(c, err, "add word")
		return
	}

	response := gin.H{"word": word}
	if req.AutoEnrich && vc.queue != nil {
		ids, err := vc.queue.Enqueue(c.Request.Context(), tasks.EnrichWordTask{WordID: word.ID})
		if err == nil && len(ids) > 0 {
			response["task_id"] = ids[0]
		}
	}

	respondCreated(c, response)
}

// GetWord returns a word with its forms.
// GET /api/vocabulary/:id
func (vc *VocabularyController) GetWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := vc.store.GetWordByID(id)
	if errors.Is(err, database.ErrWordNotFound) {
		respondNotFound(c, "word")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get word")
		return
	}

	c.JSON(http.StatusOK, gin.H{"word": word})
}

// DeleteWord removes a word.
// DELETE /api/vocabulary/:id
func (vc *VocabularyController) DeleteWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := vc.store.DeleteWord(id)
	if errors.Is(err, database.ErrWordNotFound) {
		respondNotFound(c, "word")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete word")
		return
	}

	respondSuccess(c, "word deleted")
}

// GetVocabularyStats returns counts per enrichment status.
// GET /api/vocabulary/stats
func (vc *VocabularyController) GetVocabularyStats(c *gin.Context) {
	stats, err := vc.store.GetVocabularyStats()
	if err != nil {
		respondInternalError(c, err, "vocabulary stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// EnrichWord resets a word to pending and enqueues its enrichment.
// POST /api/vocabulary/:id/enrich
func (vc *VocabularyController) EnrichWord(c *gin.Context) {
	if vc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := vc.store.GetWordByID(id); err != nil {
		if errors.Is(err, database.ErrWordNotFound) {
			respondNotFound(c, "word")
			return
		}
		respondInternalError(c, err, "get word")
		return
	}

	if err := vc.store.ResetWord(id); err != nil {
		respondInternalError(c, err, "reset word")
		return
	}

	ids, err := vc.queue.Enqueue(c.Request.Context(), tasks.EnrichWordTask{WordID: id})
	if err != nil {
		respondInternalError(c, err, "enqueue enrich_word")
		return
	}

	respondAccepted(c, "enrichment enqueued", gin.H{"task_id": ids[0]})
}

// EnrichAllWords enqueues enrichment of every pending word.
// POST /api/vocabulary/enrich
func (vc *VocabularyController) EnrichAllWords(c *gin.Context) {
	if vc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	ids, err := vc.queue.Enqueue(c.Request.Context(), tasks.EnrichAllPendingWordsTask{})
	if err != nil {
		respondInternalError(c, err, "enqueue enrich_all_words")
		return
	}

	respondAccepted(c, "enrichment of pending words enqueued", gin.H{"task_id": ids[0]})
}
