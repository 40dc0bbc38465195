package service

import (
	"context"
	"time"

	"perapera/internal/config"
	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/repository"

	"gorm.io/gorm"
)

type SeedService interface {
	Seed(ctx context.Context, cards []model.Card, reset bool) (int, error)
}

type seedService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	logRepo  repository.ReviewLogRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewSeedService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, cfg *config.Config) SeedService {
	return &seedService{
		db:       db,
		cardRepo: cardRepo,
		logRepo:  logRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Seed はカードを未学習・本日復習予定として一括登録します。
// reset が true の場合は既存のカードと復習履歴をすべて削除してから登録します。
// 入力内の重複、および既存カードと重複する漢字はスキップします。
func (s *seedService) Seed(ctx context.Context, cards []model.Card, reset bool) (int, error) {
	logger := middleware.GetLogger(ctx)
	today := dateOf(s.now(), s.cfg.Location())

	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := s.logRepo.DeleteAll(ctx, tx); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "復習履歴の削除に失敗しました。", "", err)
			}
			removed, err := s.cardRepo.DeleteAll(ctx, tx)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
			}
			logger.Info("Existing deck cleared", "removed", removed)
		}

		seen := make(map[string]struct{}, len(cards))
		batch := make([]*model.Card, 0, len(cards))
		for i := range cards {
			c := cards[i]
			if c.Kanji == "" {
				continue
			}
			if _, dup := seen[c.Kanji]; dup {
				continue
			}
			seen[c.Kanji] = struct{}{}

			if !reset {
				exists, err := s.cardRepo.KanjiExists(ctx, tx, c.Kanji)
				if err != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの確認中にエラーが発生しました。", "", err)
				}
				if exists {
					continue
				}
			}

			c.ID = 0
			c.PrevReview = today
			c.NextReview = today
			c.Seen = false
			batch = append(batch, &c)
		}

		if err := s.cardRepo.CreateBatch(ctx, tx, batch); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの一括登録に失敗しました。", "", err)
		}
		inserted = len(batch)
		return nil
	})
	if err != nil {
		logger.Error("Seeding failed", "error", err)
		return 0, err
	}

	logger.Info("Deck seeded", "inserted", inserted, "input", len(cards), "reset", reset)
	return inserted, nil
}
