// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating は想起の難しさ (1: Unknown, 2: Hard, 3: Okay, 4: Easy)
type Rating int

const (
	RatingUnknown Rating = iota + 1 // 1
	RatingHard                      // 2
	RatingOkay                      // 3
	RatingEasy                      // 4
)

// Ratings はUIに表示する順序
var Ratings = []Rating{RatingUnknown, RatingHard, RatingOkay, RatingEasy}

func (r Rating) Valid() bool {
	return r >= RatingUnknown && r <= RatingEasy
}

func (r Rating) Label() string {
	switch r {
	case RatingUnknown:
		return "Unknown"
	case RatingHard:
		return "Hard"
	case RatingOkay:
		return "Okay"
	case RatingEasy:
		return "Easy"
	default:
		return "Invalid"
	}
}

// ReviewLog は1回分の復習結果を記録します
type ReviewLog struct {
	ReviewID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"review_id"`
	CardID       uint      `gorm:"not null;index" json:"card_id"`
	Rating       Rating    `gorm:"not null" json:"rating"`
	IntervalDays int       `gorm:"not null" json:"interval_days"`
	PrevReview   time.Time `gorm:"not null" json:"prev_review"`
	NextReview   time.Time `gorm:"not null" json:"next_review"`
	ReviewedAt   time.Time `gorm:"not null;index" json:"reviewed_at"`
}

func (ReviewLog) TableName() string {
	return "review_logs"
}

// ReviewResult は復習結果送信のレスポンスDTO
type ReviewResult struct {
	CardID       uint      `json:"card_id"`
	Rating       Rating    `json:"rating"`
	IntervalDays int       `json:"interval_days"`
	NextReview   time.Time `json:"next_review"`
	Message      string    `json:"message"`
}

// Stats はデッキ全体の統計
type Stats struct {
	TotalCards   int64 `json:"total_cards"`
	SeenCards    int64 `json:"seen_cards"`
	DueCards     int64 `json:"due_cards"`
	ReviewsToday int64 `json:"reviews_today"`
	ReviewLimit  int   `json:"review_limit"` // 0 = 無制限
}
