// internal/service/review_service_test.go
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"perapera/internal/config"
	"perapera/internal/model"
	"perapera/internal/repository"
	"perapera/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
// トランザクションを張るためだけに使用し、データアクセスはモックで置き換える
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB("sqlite", ":memory:", testLogger)
	require.NoError(t, err)
	return db
}

func testConfig(limit int) *config.Config {
	return &config.Config{App: config.AppConfig{ReviewLimit: limit, Timezone: "UTC"}}
}

func fixedClock() time.Time {
	return time.Date(2024, 4, 10, 9, 30, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func Test_calculateNextInterval(t *testing.T) {
	tests := []struct {
		name   string
		prev   time.Time
		next   time.Time
		rating model.Rating
		want   int
	}{
		{"新規カード Unknown は0日", date(2024, 4, 9), date(2024, 4, 10), model.RatingUnknown, 0},
		{"新規カード Hard は2日", date(2024, 4, 9), date(2024, 4, 10), model.RatingHard, 2},
		{"新規カード Okay は3日", date(2024, 4, 9), date(2024, 4, 10), model.RatingOkay, 3},
		{"新規カード Easy は4日", date(2024, 4, 9), date(2024, 4, 10), model.RatingEasy, 4},
		{"1.5 は偶数丸めで2", date(2024, 4, 10), date(2024, 4, 10), model.RatingOkay, 2},
		{"4.5 は偶数丸めで4", date(2024, 4, 1), date(2024, 4, 3), model.RatingOkay, 4},
		{"7.5 は偶数丸めで8", date(2024, 4, 1), date(2024, 4, 5), model.RatingOkay, 8},
		{"月をまたぐ間隔", date(2024, 3, 30), date(2024, 4, 2), model.RatingEasy, 8},
		{"ローカル時刻でも暦日で計算", time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC).In(time.FixedZone("JST", 9*3600)), date(2024, 4, 10), model.RatingHard, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateNextInterval(tt.prev, tt.next, tt.rating))
		})
	}
}

func Test_dateOf(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	// UTC では 4/9 だが JST では 4/10
	instant := time.Date(2024, 4, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, date(2024, 4, 9), dateOf(instant, time.UTC))
	assert.Equal(t, date(2024, 4, 10), dateOf(instant, jst))
	assert.Equal(t, time.Date(2024, 4, 9, 15, 0, 0, 0, time.UTC), startOfDay(instant, jst))
}

func Test_reviewService_NextCard(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	dueBy := date(2024, 4, 11)
	card := &model.Card{ID: 7, Kanji: "日", PrevReview: date(2024, 4, 9), NextReview: date(2024, 4, 10)}

	tests := []struct {
		name        string
		limit       int
		setupMock   func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository)
		wantErr     error
		wantCardID  uint
		wantCurrent bool
	}{
		{
			name: "正常系: 期限切れカードを返す",
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindFirstDue", ctx, db, dueBy).Return(card, nil).Once()
			},
			wantCardID:  7,
			wantCurrent: true,
		},
		{
			name: "異常系: 対象カードなし",
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindFirstDue", ctx, db, dueBy).Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: DBエラー",
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindFirstDue", ctx, db, dueBy).Return(nil, errors.New("db down")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
		{
			name:  "正常系: 上限未満なら返す",
			limit: 5,
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				lr.On("CountSince", ctx, db, date(2024, 4, 10)).Return(int64(4), nil).Once()
				cr.On("FindFirstDue", ctx, db, dueBy).Return(card, nil).Once()
			},
			wantCardID:  7,
			wantCurrent: true,
		},
		{
			name:  "異常系: 1日の上限に到達",
			limit: 5,
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				lr.On("CountSince", ctx, db, date(2024, 4, 10)).Return(int64(5), nil).Once()
			},
			wantErr: model.ErrTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cardRepo := new(mocks.CardRepository)
			logRepo := new(mocks.ReviewLogRepository)
			tt.setupMock(cardRepo, logRepo)
			svc := newReviewService(db, cardRepo, logRepo, testConfig(tt.limit), fixedClock)

			got, err := svc.NextCard(ctx)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, model.ErrInternalServer) {
					var appErr *model.AppError
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Code)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCardID, got.ID)
			}
			id, ok := svc.target(nil)
			assert.Equal(t, tt.wantCurrent, ok)
			if tt.wantCurrent {
				assert.Equal(t, tt.wantCardID, id)
			}
			cardRepo.AssertExpectations(t)
			logRepo.AssertExpectations(t)
		})
	}
}

func Test_reviewService_SubmitReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	newCard := func() *model.Card {
		return &model.Card{ID: 3, Kanji: "月", PrevReview: date(2024, 4, 9), NextReview: date(2024, 4, 10)}
	}

	tests := []struct {
		name        string
		rating      model.Rating
		cardID      *uint
		current     *uint
		setupMock   func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository)
		wantErr     error
		wantDays    int
		wantNext    time.Time
		wantMessage string
	}{
		{
			name:    "正常系: 現在のカードを Okay で評価",
			rating:  model.RatingOkay,
			current: uintPtr(3),
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindByID", ctx, mock.Anything, uint(3)).Return(newCard(), nil).Once()
				cr.On("Update", ctx, mock.Anything, mock.MatchedBy(func(c *model.Card) bool {
					return c.ID == 3 && c.Seen && c.PrevReview.Equal(date(2024, 4, 10)) && c.NextReview.Equal(date(2024, 4, 14))
				})).Return(nil).Once()
				lr.On("Create", ctx, mock.Anything, mock.MatchedBy(func(l *model.ReviewLog) bool {
					return l.CardID == 3 && l.Rating == model.RatingOkay && l.IntervalDays == 3 && l.ReviewedAt.Equal(fixedClock())
				})).Return(nil).Once()
			},
			wantDays:    3,
			wantNext:    date(2024, 4, 14),
			wantMessage: "Next review for card 3 in 3 days (3)",
		},
		{
			name:   "正常系: card_id 指定で Unknown は翌日に再表示",
			rating: model.RatingUnknown,
			cardID: uintPtr(3),
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindByID", ctx, mock.Anything, uint(3)).Return(newCard(), nil).Once()
				cr.On("Update", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil).Once()
				lr.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.ReviewLog")).Return(nil).Once()
			},
			wantDays:    0,
			wantNext:    date(2024, 4, 11),
			wantMessage: "Next review for card 3 in 0 days (1)",
		},
		{
			name:      "異常系: 現在のカードなし",
			rating:    model.RatingOkay,
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:    "異常系: カードが存在しない",
			rating:  model.RatingOkay,
			current: uintPtr(99),
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindByID", ctx, mock.Anything, uint(99)).Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:    "異常系: 評価値が範囲外",
			rating:  model.Rating(5),
			current: uintPtr(3),
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindByID", ctx, mock.Anything, uint(3)).Return(newCard(), nil).Once()
			},
			wantErr: model.ErrUnprocessable,
		},
		{
			name:    "異常系: 履歴の保存に失敗",
			rating:  model.RatingEasy,
			current: uintPtr(3),
			setupMock: func(cr *mocks.CardRepository, lr *mocks.ReviewLogRepository) {
				cr.On("FindByID", ctx, mock.Anything, uint(3)).Return(newCard(), nil).Once()
				cr.On("Update", ctx, mock.Anything, mock.AnythingOfType("*model.Card")).Return(nil).Once()
				lr.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.ReviewLog")).Return(errors.New("disk full")).Once()
			},
			wantErr: errors.New("INTERNAL_SERVER_ERROR"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cardRepo := new(mocks.CardRepository)
			logRepo := new(mocks.ReviewLogRepository)
			tt.setupMock(cardRepo, logRepo)
			svc := newReviewService(db, cardRepo, logRepo, testConfig(0), fixedClock)
			svc.current = tt.current

			got, err := svc.SubmitReview(ctx, tt.rating, tt.cardID)

			if tt.wantErr != nil {
				require.Error(t, err)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				if appErr.Code != "INTERNAL_SERVER_ERROR" {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantDays, got.IntervalDays)
				assert.True(t, tt.wantNext.Equal(got.NextReview), "next_review = %s", got.NextReview)
				assert.Equal(t, tt.wantMessage, got.Message)
			}
			cardRepo.AssertExpectations(t)
			logRepo.AssertExpectations(t)
		})
	}
}

func Test_reviewService_Stats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	t.Run("正常系: 件数を集計", func(t *testing.T) {
		cardRepo := new(mocks.CardRepository)
		logRepo := new(mocks.ReviewLogRepository)
		cardRepo.On("CountStats", ctx, db, date(2024, 4, 11)).Return(int64(20), int64(4), int64(17), nil).Once()
		logRepo.On("CountSince", ctx, db, date(2024, 4, 10)).Return(int64(6), nil).Once()
		svc := newReviewService(db, cardRepo, logRepo, testConfig(50), fixedClock)

		got, err := svc.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, &model.Stats{TotalCards: 20, SeenCards: 4, DueCards: 17, ReviewsToday: 6, ReviewLimit: 50}, got)
	})

	t.Run("異常系: 集計に失敗", func(t *testing.T) {
		cardRepo := new(mocks.CardRepository)
		logRepo := new(mocks.ReviewLogRepository)
		cardRepo.On("CountStats", ctx, db, date(2024, 4, 11)).Return(int64(0), int64(0), int64(0), errors.New("boom")).Once()
		svc := newReviewService(db, cardRepo, logRepo, testConfig(0), fixedClock)

		got, err := svc.Stats(ctx)

		require.Error(t, err)
		assert.Nil(t, got)
		logRepo.AssertNotCalled(t, "CountSince", mock.Anything, mock.Anything, mock.Anything)
	})
}

// 実DBを使ったシナリオ: 取得 → 評価 → 再取得
func Test_reviewService_WithSQLite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cardRepo := repository.NewGormCardRepository()
	logRepo := repository.NewGormReviewLogRepository()
	cfg := testConfig(0)
	svc := newReviewService(db, cardRepo, logRepo, cfg, fixedClock)

	require.NoError(t, cardRepo.Create(ctx, db, &model.Card{Kanji: "一", Meanings: "one", PrevReview: date(2024, 4, 10), NextReview: date(2024, 4, 10)}))
	require.NoError(t, cardRepo.Create(ctx, db, &model.Card{Kanji: "二", Meanings: "two", PrevReview: date(2024, 4, 10), NextReview: date(2024, 4, 10)}))

	first, err := svc.NextCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "一", first.Kanji)

	res, err := svc.SubmitReview(ctx, model.RatingEasy, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.IntervalDays)

	second, err := svc.NextCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "二", second.Kanji)

	logs, err := logRepo.FindByCardID(ctx, db, first.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.RatingEasy, logs[0].Rating)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCards)
	assert.Equal(t, int64(1), stats.SeenCards)
	assert.Equal(t, int64(1), stats.DueCards)
	assert.Equal(t, int64(1), stats.ReviewsToday)
}
