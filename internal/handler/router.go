package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/handler/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/handler/quiz"
	middlewarePkg "github.com/zhouzirui/pawmatch/backend/internal/middleware"
	quizService "github.com/zhouzirui/pawmatch/backend/internal/service/quiz"
	"github.com/zhouzirui/pawmatch/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(catalog quizService.CatalogSource, quizSvc *quizService.Service, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	breedHandler := breed.New(catalog)
	quizHandler := quiz.New(quizSvc, logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, ready := catalog.Catalog()
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"catalogReady": ready,
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		breedHandler.RegisterRoutes(api)
		quizHandler.RegisterRoutes(api)
	})

	return r
}
