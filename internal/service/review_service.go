//go:generate mockery --name ReviewService --structname MockReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"perapera/internal/config"
	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 評価ごとの間隔倍率
var intervalScaler = map[model.Rating]float64{
	model.RatingUnknown: 0,
	model.RatingHard:    1,
	model.RatingOkay:    1.5,
	model.RatingEasy:    2,
}

type ReviewService interface {
	NextCard(ctx context.Context) (*model.Card, error)
	SubmitReview(ctx context.Context, rating model.Rating, cardID *uint) (*model.ReviewResult, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type reviewService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	logRepo  repository.ReviewLogRepository
	cfg      *config.Config
	now      func() time.Time

	mu      sync.Mutex
	current *uint // 直近の NextCard で返したカード
}

func NewReviewService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, cfg *config.Config) ReviewService {
	return newReviewService(db, cardRepo, logRepo, cfg, time.Now)
}

func newReviewService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, cfg *config.Config, now func() time.Time) *reviewService {
	return &reviewService{
		db:       db,
		cardRepo: cardRepo,
		logRepo:  logRepo,
		cfg:      cfg,
		now:      now,
	}
}

// NextCard は復習期限 (明日まで) を迎えたカードのうち ID が最小のものを返し、現在のカードとして記憶します。
func (s *reviewService) NextCard(ctx context.Context) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	now := s.now()
	today := dateOf(now, s.cfg.Location())

	if limit := s.cfg.App.ReviewLimit; limit > 0 {
		count, err := s.logRepo.CountSince(ctx, s.db, startOfDay(now, s.cfg.Location()))
		if err != nil {
			logger.Error("Failed to count today's reviews", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習回数の取得に失敗しました。", "", err)
		}
		if count >= int64(limit) {
			logger.Info("Daily review limit reached", "count", count, "limit", limit)
			return nil, model.NewAppError("REVIEW_LIMIT_REACHED", "Card review limit reached", "", model.ErrTooManyRequests)
		}
	}

	card, err := s.cardRepo.FindFirstDue(ctx, s.db, today.AddDate(0, 0, 1))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("No card due for review", "today", today.Format(time.DateOnly))
			return nil, model.NewAppError("NOT_FOUND", "No card found for review today", "", err)
		}
		logger.Error("Failed to find due card", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}

	s.mu.Lock()
	id := card.ID
	s.current = &id
	s.mu.Unlock()

	logger.Debug("Next card selected", "card_id", card.ID, "kanji", card.Kanji)
	return card, nil
}

// SubmitReview は評価を記録し、次回の復習日を更新します。cardID が nil の場合は現在のカードが対象です。
func (s *reviewService) SubmitReview(ctx context.Context, rating model.Rating, cardID *uint) (*model.ReviewResult, error) {
	id, ok := s.target(cardID)
	if !ok {
		return nil, model.NewAppError("NO_CURRENT_CARD", "Call /next_card before review", "card_id", model.ErrInvalidInput)
	}
	logger := middleware.GetLogger(ctx).With("card_id", id, "rating", int(rating))

	var result *model.ReviewResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Card to review not found")
				return model.NewAppError("NOT_FOUND", "Card not found", "card_id", err)
			}
			logger.Error("Failed to find card for review", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}
		if !rating.Valid() {
			return model.NewAppError("INVALID_RATING", "Rating must be between 1 and 4", "rating", model.ErrUnprocessable)
		}

		now := s.now()
		today := dateOf(now, s.cfg.Location())
		days := calculateNextInterval(card.PrevReview, card.NextReview, rating)

		card.PrevReview = today
		card.NextReview = today.AddDate(0, 0, 1+days)
		card.Seen = true
		if err := s.cardRepo.Update(ctx, tx, card); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Card disappeared during review", "error", err)
				return model.NewAppError("NOT_FOUND", "Card not found", "card_id", err)
			}
			logger.Error("Failed to update card schedule", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習日の更新に失敗しました。", "", err)
		}

		entry := &model.ReviewLog{
			ReviewID:     uuid.New(),
			CardID:       card.ID,
			Rating:       rating,
			IntervalDays: days,
			PrevReview:   card.PrevReview,
			NextReview:   card.NextReview,
			ReviewedAt:   now.UTC(),
		}
		if err := s.logRepo.Create(ctx, tx, entry); err != nil {
			logger.Error("Failed to record review log", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習履歴の保存に失敗しました。", "", err)
		}

		result = &model.ReviewResult{
			CardID:       card.ID,
			Rating:       rating,
			IntervalDays: days,
			NextReview:   card.NextReview,
			Message:      fmt.Sprintf("Next review for card %d in %d days (%d)", card.ID, days, rating),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review recorded", "interval_days", result.IntervalDays, "next_review", result.NextReview.Format(time.DateOnly))
	return result, nil
}

func (s *reviewService) Stats(ctx context.Context) (*model.Stats, error) {
	logger := middleware.GetLogger(ctx)
	now := s.now()
	today := dateOf(now, s.cfg.Location())

	total, seen, due, err := s.cardRepo.CountStats(ctx, s.db, today.AddDate(0, 0, 1))
	if err != nil {
		logger.Error("Failed to count cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	reviews, err := s.logRepo.CountSince(ctx, s.db, startOfDay(now, s.cfg.Location()))
	if err != nil {
		logger.Error("Failed to count today's reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	return &model.Stats{
		TotalCards:   total,
		SeenCards:    seen,
		DueCards:     due,
		ReviewsToday: reviews,
		ReviewLimit:  s.cfg.App.ReviewLimit,
	}, nil
}

func (s *reviewService) target(cardID *uint) (uint, bool) {
	if cardID != nil {
		return *cardID, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, false
	}
	return *s.current, true
}

// calculateNextInterval は (next - prev + 1日) に評価の倍率を掛け、偶数丸めした日数を返します。
func calculateNextInterval(prev, next time.Time, rating model.Rating) int {
	interval := daysBetween(prev, next) + 1
	return int(math.RoundToEven(float64(interval) * intervalScaler[rating]))
}

func daysBetween(from, to time.Time) int {
	a := dateOf(from, time.UTC)
	b := dateOf(to, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// dateOf は loc における暦日を UTC の 0 時として返します。
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// startOfDay は loc における今日の 0 時 (UTC 表現) を返します。
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).UTC()
}
