package models

import (
	"time"
)

// Comment is owned by its question: append-only, never edited, never
// addressable on its own. Text is sanitized before it reaches this struct.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	QuestionID uint      `gorm:"not null;index" json:"-"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CommentBy  string    `gorm:"size:100;default:'anonymous'" json:"comment_by"`
	CreatedAt  time.Time `json:"comment_time"`
}
