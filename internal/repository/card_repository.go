//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"perapera/internal/middleware"
	"perapera/internal/model"

	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	CreateBatch(ctx context.Context, tx *gorm.DB, cards []*model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Card, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Card, error)
	FindSeen(ctx context.Context, db *gorm.DB) ([]*model.Card, error)
	FindFirstDue(ctx context.Context, db *gorm.DB, dueBy time.Time) (*model.Card, error)
	Update(ctx context.Context, tx *gorm.DB, card *model.Card) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error)
	KanjiExists(ctx context.Context, db *gorm.DB, kanji string) (bool, error)
	CountStats(ctx context.Context, db *gorm.DB, dueBy time.Time) (total, seen, due int64, err error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		middleware.GetLogger(ctx).Error("Error creating card in DB",
			"error", result.Error,
			"kanji", card.Kanji,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) CreateBatch(ctx context.Context, tx *gorm.DB, cards []*model.Card) error {
	if len(cards) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).CreateInBatches(cards, 100)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating cards in DB", "error", result.Error, "count", len(cards))
		return fmt.Errorf("gormCardRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Card, error) {
	var card model.Card
	result := db.WithContext(ctx).Where("id = ?", id).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding card by ID in DB", "error", result.Error, "card_id", id)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Card, error) {
	var cards []*model.Card
	result := db.WithContext(ctx).Order("id ASC").Find(&cards)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error finding all cards in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCardRepository.FindAll: %w", result.Error)
	}
	return cards, nil
}

// FindSeen は一度でも復習したカードを次回復習日の昇順で返します。
func (r *gormCardRepository) FindSeen(ctx context.Context, db *gorm.DB) ([]*model.Card, error) {
	var cards []*model.Card
	result := db.WithContext(ctx).Where("seen = ?", true).Order("next_review ASC, id ASC").Find(&cards)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error finding seen cards in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCardRepository.FindSeen: %w", result.Error)
	}
	return cards, nil
}

// FindFirstDue は next_review <= dueBy を満たすカードのうち ID が最小のものを返します。
func (r *gormCardRepository) FindFirstDue(ctx context.Context, db *gorm.DB, dueBy time.Time) (*model.Card, error) {
	var card model.Card
	result := db.WithContext(ctx).Where("next_review <= ?", dueBy).Order("id ASC").First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding due card in DB", "error", result.Error, "due_by", dueBy)
		return nil, fmt.Errorf("gormCardRepository.FindFirstDue: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	result := tx.WithContext(ctx).Model(&model.Card{}).Where("id = ?", card.ID).Updates(map[string]interface{}{
		"prev_review": card.PrevReview,
		"next_review": card.NextReview,
		"seen":        card.Seen,
	})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating card in DB", "error", result.Error, "card_id", card.ID)
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&model.Card{}, id)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting card in DB", "error", result.Error, "card_id", id)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	result := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Card{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting all cards in DB", "error", result.Error)
		return 0, fmt.Errorf("gormCardRepository.DeleteAll: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormCardRepository) KanjiExists(ctx context.Context, db *gorm.DB, kanji string) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).Where("kanji = ?", kanji).Count(&count)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error checking kanji existence in DB", "error", result.Error, "kanji", kanji)
		return false, fmt.Errorf("gormCardRepository.KanjiExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCardRepository) CountStats(ctx context.Context, db *gorm.DB, dueBy time.Time) (total, seen, due int64, err error) {
	q := db.WithContext(ctx).Model(&model.Card{})
	if err = q.Count(&total).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("gormCardRepository.CountStats total: %w", err)
	}
	if err = db.WithContext(ctx).Model(&model.Card{}).Where("seen = ?", true).Count(&seen).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("gormCardRepository.CountStats seen: %w", err)
	}
	if err = db.WithContext(ctx).Model(&model.Card{}).Where("next_review <= ?", dueBy).Count(&due).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("gormCardRepository.CountStats due: %w", err)
	}
	return total, seen, due, nil
}
