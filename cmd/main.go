// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perapera/internal/config"
	"perapera/internal/handlers"
	"perapera/internal/kanjidata"
	"perapera/internal/logging"
	"perapera/internal/middleware"
	"perapera/internal/repository"
	"perapera/internal/service"
	"perapera/internal/web"

	"gorm.io/gorm"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	// === 設定に基づいて slog ロガーを初期化 ===
	logger := logging.New(os.Stderr, cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	log.Println("Log Config Loaded...")

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. Dependency Injection
	cardRepo := repository.NewGormCardRepository()
	logRepo := repository.NewGormReviewLogRepository()

	cardService := service.NewCardService(db, cardRepo, logRepo, cfg)
	reviewService := service.NewReviewService(db, cardRepo, logRepo, cfg)
	seedService := service.NewSeedService(db, cardRepo, logRepo, cfg)

	if cfg.App.SeedOnStartup {
		ctx := middleware.WithLogger(context.Background(), logger.With("task", "seed"))
		if err := seedIfEmpty(ctx, db, cardRepo, seedService, cfg); err != nil {
			slog.Error("Error seeding deck on startup", slog.Any("error", err))
			os.Exit(1)
		}
	}

	ui := web.NewHandler(cardService, reviewService)

	if cfg.Auth.Enabled {
		slog.Info("Applying JWT authentication to write routes")
	}

	// 4. Setup Router
	r := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  logger,
		DB:      sqlDB,
		Cards:   cardService,
		Reviews: reviewService,
		UI:      ui,
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1) // Listen失敗は致命的
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// seedIfEmpty はデッキが空の場合のみ app.seed_file からカードを登録します。
func seedIfEmpty(ctx context.Context, db *gorm.DB, cardRepo repository.CardRepository, seeder service.SeedService, cfg *config.Config) error {
	logger := middleware.GetLogger(ctx)

	total, _, _, err := cardRepo.CountStats(ctx, db, time.Now())
	if err != nil {
		return err
	}
	if total > 0 {
		logger.Info("Deck already populated, skipping seed", slog.Int64("cards", total))
		return nil
	}

	cards, err := kanjidata.LoadFile(cfg.App.SeedFile, cfg.App.SeedLimit)
	if err != nil {
		return err
	}
	inserted, err := seeder.Seed(ctx, cards, false)
	if err != nil {
		return err
	}
	logger.Info("Deck seeded from file", slog.String("file", cfg.App.SeedFile), slog.Int("inserted", inserted))
	return nil
}
