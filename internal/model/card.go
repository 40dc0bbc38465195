// internal/model/card.go
package model

import "time"

// Card は漢字カード1枚と、その復習スケジュールを表します
type Card struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Kanji       string    `gorm:"not null;uniqueIndex" json:"kanji"`
	Strokes     int       `gorm:"not null;default:0" json:"strokes"`
	Grade       int       `gorm:"not null;default:0" json:"grade"`
	Freq        int       `gorm:"not null;default:0;index" json:"freq"`
	JLPTNew     int       `gorm:"column:jlpt_new;not null;default:0" json:"jlpt_new"`
	Meanings    string    `json:"meanings"`     // 先頭の意味のみ
	ReadingsOn  string    `json:"readings_on"`  // 音読み
	ReadingsKun string    `json:"readings_kun"` // 訓読み
	PrevReview  time.Time `gorm:"not null" json:"prev_review"`
	NextReview  time.Time `gorm:"not null;index" json:"next_review"`
	Seen        bool      `gorm:"not null;default:false;index" json:"seen"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}

// NewCardRequest はカード追加リクエストDTO
type NewCardRequest struct {
	Kanji       string `json:"kanji" validate:"required,han,max=16"`
	Strokes     int    `json:"strokes" validate:"gte=0"`
	Grade       int    `json:"grade" validate:"gte=0"`
	Freq        int    `json:"freq" validate:"gte=0"`
	JLPTNew     int    `json:"jlpt_new" validate:"gte=0,lte=5"`
	Meanings    string `json:"meanings" validate:"required,max=200"`
	ReadingsOn  string `json:"readings_on" validate:"max=200"`
	ReadingsKun string `json:"readings_kun" validate:"max=200"`

	// 旧クライアント (React版) が送ってくるフィールド。受け付けるが使用しない。
	PrevReview any `json:"prev_review,omitempty" validate:"-"`
	NextReview any `json:"next_review,omitempty" validate:"-"`
	Seen       any `json:"seen,omitempty" validate:"-"`
}
