// Package logging は設定に応じた slog ロガーを組み立てます。
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel は config.yaml の log.level を slog.Level に変換します。
// 不明な値の場合は Info と false を返します。
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New は APP_ENV=dev なら tint のカラー出力、それ以外は JSON 出力のロガーを返します。
func New(w io.Writer, level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	lv, ok := ParseLevel(level)
	logLevel.Set(lv)

	var handler slog.Handler
	if strings.EqualFold(appEnv, "dev") {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}

	logger := slog.New(handler)
	if !ok {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	return logger
}
