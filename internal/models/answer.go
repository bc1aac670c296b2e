package models

import (
	"time"
)

// Answer rows are created before their parent question is verified, and
// removed again if the question turns out not to exist. QuestionID therefore
// carries no database-level foreign key constraint.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	AnsBy      string    `gorm:"size:100;not null" json:"ans_by"`
	CreatedAt  time.Time `json:"ans_date_time"`
}
