package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gamehandler "github.com/quibblegames/twentyq/backend/internal/handler/game"
	middlewarePkg "github.com/quibblegames/twentyq/backend/internal/middleware"
	gameservice "github.com/quibblegames/twentyq/backend/internal/service/game"
	"github.com/quibblegames/twentyq/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the game service. gameSvc may be nil when
// model credentials are absent; game routes then answer 503 instead of the
// whole process refusing to start.
func NewRouter(gameSvc *gameservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		if gameSvc == nil {
			api.Handle("/games/*", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "model backend unavailable")
			}))
			return
		}

		gamehandler.New(gameSvc).RegisterRoutes(api)
	})

	return r
}
