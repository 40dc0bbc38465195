//go:generate mockery --name CardService --structname MockCardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"perapera/internal/config"
	"perapera/internal/kanjidata"
	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/repository"
	"perapera/internal/webutil"

	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, req *model.NewCardRequest) (*model.Card, error)
	ListCards(ctx context.Context) ([]*model.Card, error)
	ListSeenCards(ctx context.Context) ([]*model.Card, error)
	GetCard(ctx context.Context, id uint) (*model.Card, error)
	DeleteCard(ctx context.Context, id uint) (*model.Card, error)
	ListReviews(ctx context.Context, id uint) ([]*model.ReviewLog, error)
}

type cardService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	logRepo  repository.ReviewLogRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, cfg *config.Config) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
		logRepo:  logRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CreateCard は入力を正規化・検証し、翌日に復習予定の未学習カードとして保存します。
func (s *cardService) CreateCard(ctx context.Context, req *model.NewCardRequest) (*model.Card, error) {
	if req == nil {
		return nil, model.NewAppError("INVALID_INPUT", "リクエストが空です。", "", model.ErrInvalidInput)
	}
	logger := middleware.GetLogger(ctx)

	normalized := *req
	normalized.Kanji = kanjidata.Normalize(req.Kanji)
	normalized.Meanings = kanjidata.Normalize(req.Meanings)
	normalized.ReadingsOn = kanjidata.Normalize(req.ReadingsOn)
	normalized.ReadingsKun = kanjidata.Normalize(req.ReadingsKun)
	if err := webutil.ValidateStruct(&normalized); err != nil {
		logger.Info("Card validation failed", "error", err)
		return nil, err
	}

	today := dateOf(s.now(), s.cfg.Location())
	card := &model.Card{
		Kanji:       normalized.Kanji,
		Strokes:     normalized.Strokes,
		Grade:       normalized.Grade,
		Freq:        normalized.Freq,
		JLPTNew:     normalized.JLPTNew,
		Meanings:    normalized.Meanings,
		ReadingsOn:  normalized.ReadingsOn,
		ReadingsKun: normalized.ReadingsKun,
		PrevReview:  today,
		NextReview:  today.AddDate(0, 0, 1),
		Seen:        false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.cardRepo.KanjiExists(ctx, tx, card.Kanji)
		if err != nil {
			logger.Error("Error checking kanji existence", "error", err, "kanji", card.Kanji)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの確認中にエラーが発生しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_KANJI", "この漢字は既に登録されています。", "kanji", model.ErrConflict)
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_KANJI", "この漢字は既に登録されています。", "kanji", err)
			}
			logger.Error("Error creating card", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card created", "card_id", card.ID, "kanji", card.Kanji)
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) ([]*model.Card, error) {
	cards, err := s.cardRepo.FindAll(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	return cards, nil
}

func (s *cardService) ListSeenCards(ctx context.Context) ([]*model.Card, error) {
	cards, err := s.cardRepo.FindSeen(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list seen cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習済みカードの取得に失敗しました。", "", err)
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	return cards, nil
}

func (s *cardService) GetCard(ctx context.Context, id uint) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, wrapFindError(ctx, err, id)
	}
	return card, nil
}

// DeleteCard はカードと復習履歴を削除し、削除したカードを返します。
func (s *cardService) DeleteCard(ctx context.Context, id uint) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("card_id", id)

	var deleted *model.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.FindByID(ctx, tx, id)
		if err != nil {
			return wrapFindError(ctx, err, id)
		}
		if err := s.logRepo.DeleteByCardID(ctx, tx, id); err != nil {
			logger.Error("Failed to delete review logs", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習履歴の削除に失敗しました。", "", err)
		}
		if err := s.cardRepo.Delete(ctx, tx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "Card not found", "id", err)
			}
			logger.Error("Failed to delete card", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
		}
		deleted = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card deleted", "kanji", deleted.Kanji)
	return deleted, nil
}

func (s *cardService) ListReviews(ctx context.Context, id uint) ([]*model.ReviewLog, error) {
	if _, err := s.cardRepo.FindByID(ctx, s.db, id); err != nil {
		return nil, wrapFindError(ctx, err, id)
	}
	logs, err := s.logRepo.FindByCardID(ctx, s.db, id)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list review logs", "error", err, "card_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習履歴の取得に失敗しました。", "", err)
	}
	if logs == nil {
		logs = []*model.ReviewLog{}
	}
	return logs, nil
}

func wrapFindError(ctx context.Context, err error, id uint) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("NOT_FOUND", "Card not found", "id", err)
	}
	middleware.GetLogger(ctx).Error("Failed to find card", "error", err, "card_id", id)
	return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
}
