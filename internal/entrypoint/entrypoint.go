package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexscheduler/internal/config"
	"github.com/mrlokans/lexscheduler/internal/database"
	http_controllers "github.com/mrlokans/lexscheduler/internal/http"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
	"github.com/mrlokans/lexscheduler/internal/scheduler"
	"github.com/mrlokans/lexscheduler/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting lexscheduler v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	src, dst := DefaultLangs(cfg)

	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		VocabularyStore:    db,
		DefaultSource:      src,
		DefaultDestination: dst,
		APITokenHash:       cfg.Auth.TokenHash,
		Version:            version,
	}

	if cfg.Auth.TokenHash == "" {
		log.Printf("WARNING: API_TOKEN_HASH is not set. The /api endpoints are not authenticated.")
	}

	var dict *lingvo.Client
	if cfg.Lingvo.APIKey == "" {
		log.Printf("WARNING: Lingvo API key is not set. Lookup and enrichment will be disabled. Set 'LINGVO_API_KEY' environment variable to enable.")
	} else {
		authTimeout := cfg.Lingvo.Timeout
		if authTimeout <= 0 {
			authTimeout = 30 * time.Second
		}
		authCtx, cancel := context.WithTimeout(context.Background(), authTimeout)
		dict, err = NewLingvoClient(authCtx, cfg)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize Lingvo client: %v", err)
		}
		routerCfg.Dictionary = dict
	}

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var enrichScheduler *scheduler.EnrichScheduler
	switch {
	case !cfg.Tasks.Enabled:
		log.Printf("Task queue disabled")
	case dict == nil:
		log.Printf("Task queue disabled: enrichment needs a Lingvo client")
	default:
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichWordQueue(db, dict),
			tasks.NewEnrichAllPendingWordsQueue(db, dict),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient

		enrichScheduler = scheduler.NewEnrichScheduler(taskClient, scheduler.Config{
			Enabled:  cfg.EnrichSync.Enabled,
			Schedule: cfg.EnrichSync.Schedule,
		})
		if err := enrichScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start enrich scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if enrichScheduler != nil {
			enrichScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
