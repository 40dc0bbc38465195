//go:generate mockery --name ReviewLogRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"perapera/internal/model"

	"gorm.io/gorm"
)

type ReviewLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error // トランザクション対応
	FindByCardID(ctx context.Context, db *gorm.DB, cardID uint) ([]*model.ReviewLog, error)
	CountSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error)
	DeleteByCardID(ctx context.Context, tx *gorm.DB, cardID uint) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type gormReviewLogRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormReviewLogRepository() ReviewLogRepository {
	return &gormReviewLogRepository{}
}

func (r *gormReviewLogRepository) Create(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error {
	// ReviewIDはService層で設定済み想定
	if err := tx.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("gormReviewLogRepository.Create: %w", err)
	}
	return nil
}

// FindByCardID は新しい順に復習履歴を返します。
func (r *gormReviewLogRepository) FindByCardID(ctx context.Context, db *gorm.DB, cardID uint) ([]*model.ReviewLog, error) {
	var logs []*model.ReviewLog
	result := db.WithContext(ctx).Where("card_id = ?", cardID).Order("reviewed_at DESC").Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("gormReviewLogRepository.FindByCardID: %w", result.Error)
	}
	return logs, nil
}

func (r *gormReviewLogRepository) CountSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.ReviewLog{}).Where("reviewed_at >= ?", since).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormReviewLogRepository.CountSince: %w", result.Error)
	}
	return count, nil
}

func (r *gormReviewLogRepository) DeleteByCardID(ctx context.Context, tx *gorm.DB, cardID uint) error {
	if err := tx.WithContext(ctx).Where("card_id = ?", cardID).Delete(&model.ReviewLog{}).Error; err != nil {
		return fmt.Errorf("gormReviewLogRepository.DeleteByCardID: %w", err)
	}
	return nil
}

func (r *gormReviewLogRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	if err := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ReviewLog{}).Error; err != nil {
		return fmt.Errorf("gormReviewLogRepository.DeleteAll: %w", err)
	}
	return nil
}
