package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// maxLoggedBody はデバッグログに出力するボディの最大バイト数です。
const maxLoggedBody = 4096

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true, // リクエストヘッダー
	"set-cookie":    true, // レスポンスヘッダー
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// responseLogger は http.ResponseWriter をラップし、ステータスコードとレスポンスボディを記録します。
type responseLogger struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
	body       *bytes.Buffer // デバッグ時のみ非nil
}

func newResponseLogger(w http.ResponseWriter, captureBody bool) *responseLogger {
	rl := &responseLogger{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
	if captureBody {
		rl.body = new(bytes.Buffer)
	}
	return rl
}

func (rl *responseLogger) WriteHeader(statusCode int) {
	rl.statusCode = statusCode
	rl.ResponseWriter.WriteHeader(statusCode)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	if rl.body != nil && rl.body.Len() < maxLoggedBody {
		rl.body.Write(b)
	}
	n, err := rl.ResponseWriter.Write(b)
	rl.bytesOut += n
	return n, err
}

// Flush は htmx の部分レンダリングでも使えるように Flusher を透過させます。
func (rl *responseLogger) Flush() {
	if f, ok := rl.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LoggingMiddleware はリクエスト/レスポンスのログ出力を一元管理するミドルウェアです。
// chi の RequestID ミドルウェアの後に配置してください。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			// リクエストID付きのロガーを生成し、コンテキストに格納
			requestLogger := logger.With(slog.String("req_id", middleware.GetReqID(r.Context())))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			debug := logger.Enabled(r.Context(), slog.LevelDebug)

			requestLogger.Debug("Request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			// リクエストボディを安全に読み取る (デバッグ用)
			var reqBodyBytes []byte
			if debug && r.Body != nil {
				reqBodyBytes, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(reqBodyBytes), r.Body))
			}

			rl := newResponseLogger(w, debug)
			next.ServeHTTP(rl, r)

			latency := time.Since(startTime)
			logLevel := slog.LevelInfo
			if rl.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if rl.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.LogAttrs(r.Context(), logLevel, "Request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rl.statusCode),
				slog.Float64("latency_ms", float64(latency.Nanoseconds())/1e6),
				slog.Int("bytes_out", rl.bytesOut),
				slog.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			)

			if debug {
				requestLogger.Debug("Request detail",
					slog.Any("headers", formatHeaders(r.Header)),
					slog.String("body", string(reqBodyBytes)),
				)
				requestLogger.Debug("Response detail",
					slog.Int("status", rl.statusCode),
					slog.Any("headers", formatHeaders(rl.Header())),
					slog.String("body", rl.body.String()),
				)
			}
		})
	}
}

// WithLogger はロガーをコンテキストに格納します。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}
