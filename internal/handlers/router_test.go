// internal/handlers/router_test.go
package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"perapera/internal/config"
	"perapera/internal/handlers"
	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/service/mocks"
	"perapera/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRouter_UIAuth(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Enabled: true, JWTSecret: "test-secret"}}

	tests := []struct {
		name       string
		cookie     string
		setupMock  func(cards *mocks.MockCardService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "異常系: クッキーなしはエラー断片",
			setupMock:  func(cards *mocks.MockCardService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "認証トークンが必要です。",
		},
		{
			name:       "異常系: 署名が異なるクッキー",
			cookie:     signTestToken(t, "other-secret", "admin", time.Hour),
			setupMock:  func(cards *mocks.MockCardService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "トークンが無効です。",
		},
		{
			name:   "正常系: 有効なクッキーで追加",
			cookie: signTestToken(t, "test-secret", "admin", time.Hour),
			setupMock: func(cards *mocks.MockCardService) {
				cards.On("CreateCard", mock.Anything, mock.Anything).Return(&model.Card{ID: 21, Kanji: "火"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Card 21 with kanji 火 was added",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards := mocks.NewMockCardService(t)
			reviews := mocks.NewMockReviewService(t)
			tc.setupMock(cards)
			router := handlers.NewRouter(handlers.RouterDeps{
				Config:  cfg,
				Logger:  testLogger,
				DB:      fakePinger{},
				Cards:   cards,
				Reviews: reviews,
				UI:      web.NewHandler(cards, reviews),
			})

			form := url.Values{"kanji": {"火"}, "meanings": {"Fire"}}
			req := httptest.NewRequest(http.MethodPost, "/ui/add", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set(web.HXRequestHeader, "true")
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
			assert.NotContains(t, rr.Body.String(), `{"error"`)
		})
	}
}
