package service_test // 公開APIだけを使って、サービス同士の連携を確認する

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"perapera/internal/config"
	"perapera/internal/model"
	"perapera/internal/repository"
	"perapera/internal/service"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// DeckSuite はインメモリ SQLite 上で、シード → 学習 → 管理 の流れを通しで検証します。
type DeckSuite struct {
	suite.Suite

	ctx     context.Context
	db      *gorm.DB
	cards   service.CardService
	reviews service.ReviewService
	seeder  service.SeedService
}

// 各テストの直前に、空のDBとサービス一式を作り直す
func (s *DeckSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := repository.NewDB("sqlite", ":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.db = db

	cfg := &config.Config{App: config.AppConfig{ReviewLimit: 2, Timezone: "UTC"}}
	cardRepo := repository.NewGormCardRepository()
	logRepo := repository.NewGormReviewLogRepository()

	s.cards = service.NewCardService(db, cardRepo, logRepo, cfg)
	s.reviews = service.NewReviewService(db, cardRepo, logRepo, cfg)
	s.seeder = service.NewSeedService(db, cardRepo, logRepo, cfg)

	inserted, err := s.seeder.Seed(s.ctx, []model.Card{
		{Kanji: "山", Meanings: "Mountain", ReadingsKun: "やま", ReadingsOn: "サン"},
		{Kanji: "川", Meanings: "River", ReadingsKun: "かわ", ReadingsOn: "セン"},
		{Kanji: "木", Meanings: "Tree", ReadingsKun: "き", ReadingsOn: "ボク"},
	}, false)
	s.Require().NoError(err)
	s.Require().Equal(3, inserted)
}

func (s *DeckSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckSuite))
}

func (s *DeckSuite) TestReviewUntilLimit() {
	first, err := s.reviews.NextCard(s.ctx)
	s.Require().NoError(err)
	s.Equal("山", first.Kanji)

	res, err := s.reviews.SubmitReview(s.ctx, model.RatingEasy, nil)
	s.Require().NoError(err)
	s.Equal(first.ID, res.CardID)
	s.Equal(2, res.IntervalDays)

	second, err := s.reviews.NextCard(s.ctx)
	s.Require().NoError(err)
	s.Equal("川", second.Kanji)

	res, err = s.reviews.SubmitReview(s.ctx, model.RatingOkay, nil)
	s.Require().NoError(err)
	s.Equal(2, res.IntervalDays, "1.5 は偶数丸めで 2")

	// 上限 2 件に達したので次のカードは出ない
	_, err = s.reviews.NextCard(s.ctx)
	s.ErrorIs(err, model.ErrTooManyRequests)

	// card_id 指定の評価は上限チェックの対象外
	third := s.findCard("木")
	_, err = s.reviews.SubmitReview(s.ctx, model.RatingUnknown, &third.ID)
	s.Require().NoError(err)

	seen, err := s.cards.ListSeenCards(s.ctx)
	s.Require().NoError(err)
	s.Len(seen, 3)

	stats, err := s.reviews.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.TotalCards)
	s.Equal(int64(3), stats.SeenCards)
	s.Equal(int64(1), stats.DueCards)
	s.Equal(int64(3), stats.ReviewsToday)
	s.Equal(2, stats.ReviewLimit)
}

func (s *DeckSuite) TestCreateAndDelete() {
	_, err := s.cards.CreateCard(s.ctx, &model.NewCardRequest{Kanji: "川", Meanings: "River"})
	s.ErrorIs(err, model.ErrConflict)

	created, err := s.cards.CreateCard(s.ctx, &model.NewCardRequest{Kanji: "火", Meanings: "Fire", ReadingsKun: "ひ"})
	s.Require().NoError(err)
	s.False(created.Seen)

	_, err = s.reviews.SubmitReview(s.ctx, model.RatingHard, &created.ID)
	s.Require().NoError(err)

	logs, err := s.cards.ListReviews(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Len(logs, 1)

	deleted, err := s.cards.DeleteCard(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("火", deleted.Kanji)

	_, err = s.cards.GetCard(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrNotFound)
	_, err = s.cards.ListReviews(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrNotFound)

	all, err := s.cards.ListCards(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *DeckSuite) TestReseed() {
	inserted, err := s.seeder.Seed(s.ctx, []model.Card{{Kanji: "山", Meanings: "Mountain"}, {Kanji: "日", Meanings: "Sun"}}, false)
	s.Require().NoError(err)
	s.Equal(1, inserted, "既存の漢字はスキップ")

	inserted, err = s.seeder.Seed(s.ctx, []model.Card{{Kanji: "月", Meanings: "Moon"}}, true)
	s.Require().NoError(err)
	s.Equal(1, inserted)

	all, err := s.cards.ListCards(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("月", all[0].Kanji)
}

func (s *DeckSuite) findCard(kanji string) *model.Card {
	all, err := s.cards.ListCards(s.ctx)
	s.Require().NoError(err)
	for _, c := range all {
		if c.Kanji == kanji {
			return c
		}
	}
	s.FailNow("card not found", kanji)
	return nil
}
