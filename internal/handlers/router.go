// internal/handlers/router.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"perapera/internal/config"
	"perapera/internal/middleware"
	"perapera/internal/service"
	"perapera/internal/web"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Pinger は DB の疎通確認に使います (*sql.DB が満たします)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterDeps struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      Pinger
	Cards   service.CardService
	Reviews service.ReviewService
	UI      *web.Handler
}

// NewRouter はミドルウェア、JSON API、UI を組み立てたルーターを返します。
func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cardHandler := NewCardHandler(deps.Cards)
	reviewHandler := NewReviewHandler(deps.Reviews)
	protect := middleware.JWTAuthMiddleware(cfg)

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// JSON API (React 版クライアントと互換のパス)
	r.Get("/next_card", reviewHandler.GetNextCard)
	r.Put("/next_card_review", reviewHandler.PutNextCardReview)
	r.Get("/stats", reviewHandler.GetStats)
	r.Get("/seen_cards", cardHandler.GetSeenCards)
	r.Get("/all_cards", cardHandler.GetAllCards)
	r.Get("/get_card/{id}", cardHandler.GetCard)
	r.Get("/get_card/{id}/reviews", cardHandler.GetCardReviews)

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/new_card", cardHandler.PostCard)
		r.Delete("/delete/{id}", cardHandler.DeleteCard)
	})

	r.Get("/health", HealthHandler(deps.DB))

	if deps.UI != nil {
		deps.UI.Routes(r, middleware.NewJWTAuthMiddleware(cfg, deps.UI.AuthError))
	}

	return r
}

// HealthHandler は DB への ping が通れば 200 "OK" を返します。
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		if db == nil {
			logger.Error("Health check failed: no database configured")
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
