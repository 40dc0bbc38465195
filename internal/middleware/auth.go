package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"perapera/internal/config"
	"perapera/internal/model"
	"perapera/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCookieName はブラウザUIでトークンを保持するクッキー名です。
const TokenCookieName = "perapera_token"

// AuthErrorResponder は認証失敗時のレスポンスを書き込みます。
type AuthErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

func respondJSONError(w http.ResponseWriter, r *http.Request, err error) {
	webutil.HandleError(w, GetLogger(r.Context()), err)
}

// JWTAuthMiddleware は Bearer トークン (またはクッキー) を検証するミドルウェア。
// cfg.Auth.Enabled が false の場合は何もしません。失敗時は JSON エラーを返します。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return NewJWTAuthMiddleware(cfg, nil)
}

// NewJWTAuthMiddleware は認証失敗時の応答を respond に任せます (nil なら JSON)。
func NewJWTAuthMiddleware(cfg *config.Config, respond AuthErrorResponder) func(http.Handler) http.Handler {
	if respond == nil {
		respond = respondJSONError
	}
	return func(next http.Handler) http.Handler {
		if cfg == nil || !cfg.Auth.Enabled {
			return next
		}
		secret := []byte(cfg.Auth.JWTSecret)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, err := extractToken(r)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				appErr := model.NewAppError("UNAUTHORIZED", "認証トークンが必要です。", "", model.ErrUnauthorized)
				respond(w, r, appErr)
				return
			}

			// jwt.Parse は署名と有効期限(exp)の両方を検証してくれる
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthorized)
				respond(w, r, appErr)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンに subject が含まれていません。", "", model.ErrUnauthorized)
				respond(w, r, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.SubjectKey, subject)
			ctx = WithLogger(ctx, logger.With("subject", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		headerParts := strings.Fields(authHeader)
		if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
			return "", errors.New("invalid Authorization header format")
		}
		return headerParts[1], nil
	}
	if c, err := r.Cookie(TokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errors.New("token missing")
}

// GetSubjectFromContext は認証済みの subject を返します。認証無効時は空文字です。
func GetSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(model.SubjectKey).(string)
	return subject
}
