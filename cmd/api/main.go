package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quibblegames/twentyq/backend/internal/config"
	"github.com/quibblegames/twentyq/backend/internal/handler"
	"github.com/quibblegames/twentyq/backend/internal/service/ai"
	"github.com/quibblegames/twentyq/backend/internal/service/daily"
	gameservice "github.com/quibblegames/twentyq/backend/internal/service/game"
	"github.com/quibblegames/twentyq/backend/internal/service/metadata"
	"github.com/quibblegames/twentyq/backend/internal/session"
	"github.com/quibblegames/twentyq/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	docs, err := openStore(cfg.Store)
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}
	defer docs.Close()

	go runExpirySweeper(ctx, docs)

	cache := session.NewCache(cfg.Store.CacheSize)
	bridge := session.NewBridge(cache, docs)

	var gameSvc *gameservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize generation service: %v", err)
			log.Println("continuing without game functionality - check the Ark model environment variables")
		} else {
			metaSvc := metadata.NewService(cfg.Metadata, docs)
			gameSvc = gameservice.NewService(bridge, aiSvc, metaSvc, daily.NewDatePicker())
			log.Println("game service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, game routes will answer 503")
	}

	router := handler.NewRouter(gameSvc)

	startServer(ctx, cfg.Server, router)
}

func openStore(cfg config.StoreConfig) (store.DocumentStore, error) {
	if cfg.Path == "" {
		log.Println("GAME_DB_PATH empty, using in-memory document store")
		return store.NewMemory(), nil
	}
	return store.NewSQLite(cfg.Path)
}

// runExpirySweeper periodically removes documents past their TTL.
func runExpirySweeper(ctx context.Context, docs store.DocumentStore) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := docs.DeleteExpired(ctx)
			if err != nil {
				log.Printf("[store] expiry sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[store] expiry sweep removed %d documents", removed)
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Twenty Questions backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
