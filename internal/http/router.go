package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexscheduler/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	var tokens TokenSource
	if ts, ok := cfg.Dictionary.(TokenSource); ok {
		tokens = ts
	}
	health := NewHealthController(cfg.Database, tokens, cfg.Version)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	if m := auth.NewMiddleware(cfg.APITokenHash); m != nil {
		api.Use(m.Handler())
	}

	api.GET("/langs", ListLangs)

	if cfg.Dictionary != nil {
		lookup := NewLookupController(cfg.Dictionary, cfg.DefaultSource, cfg.DefaultDestination)
		api.GET("/lookup/wordforms", lookup.WordForms)
		api.GET("/lookup/suggests", lookup.Suggests)
	}

	if cfg.VocabularyStore != nil {
		vocab := NewVocabularyController(cfg.VocabularyStore, cfg.TaskQueue, cfg.DefaultSource, cfg.DefaultDestination)
		api.GET("/vocabulary", vocab.ListWords)
		api.POST("/vocabulary", vocab.AddWord)
		api.GET("/vocabulary/stats", vocab.GetVocabularyStats)
		api.POST("/vocabulary/enrich", vocab.EnrichAllWords)
		api.GET("/vocabulary/:id", vocab.GetWord)
		api.DELETE("/vocabulary/:id", vocab.DeleteWord)
		api.POST("/vocabulary/:id/enrich", vocab.EnrichWord)
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
