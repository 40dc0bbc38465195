package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"perapera/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB は driver ("sqlite" / "postgres") に応じて GORM の接続を作成し、マイグレーションを行います。
func NewDB(driver, databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	if appLogger == nil {
		appLogger = slog.Default()
	}

	// 例: 環境変数 APP_ENV によって GORM のログレベルを切り替え
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	dialector, err := openDialector(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         slogGormLogger.LogMode(gormLogLevel),
		TranslateError: true, // 一意制約違反を gorm.ErrDuplicatedKey に変換
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if driver == "sqlite" {
		// SQLite は書き込みが直列化されるため、接続は1本に絞る
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		appLogger.Error("Error migrating database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", driver))
	return db, nil
}

func openDialector(driver, databaseURL string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		if databaseURL == "" {
			databaseURL = "perapera.db"
		}
		return sqlite.Open(databaseURL), nil
	case "postgres":
		if databaseURL == "" {
			return nil, fmt.Errorf("repository.NewDB: postgres requires a database url")
		}
		return postgres.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("repository.NewDB: unsupported driver %q", driver)
	}
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Card{}, &model.ReviewLog{}); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	return nil
}
