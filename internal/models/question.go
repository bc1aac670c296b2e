package models

import (
	"time"
)

type Question struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Text    string `gorm:"type:text;not null" json:"text"`
	AskedBy string `gorm:"size:100;not null" json:"asked_by"`
	Views   int    `gorm:"default:0" json:"views"` // bumped on every detail fetch, never decremented
	Votes   int    `gorm:"default:0" json:"votes"` // bumped on every upvote, never decremented

	Tags     []Tag     `gorm:"many2many:question_tags;" json:"tags"`
	Answers  []Answer  `gorm:"foreignKey:QuestionID" json:"answers"`
	Comments []Comment `gorm:"foreignKey:QuestionID" json:"comments"`

	CreatedAt time.Time `json:"ask_date_time"`
}
