package services

import (
	"errors"
	"log/slog"

	"aioverflow/internal/models"
	"aioverflow/internal/utils"

	"gorm.io/gorm"
)

type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

// CreateAnswer stores an answer and links it to its question. The id is
// validated before any write. If the question turns out not to exist, the
// just-created answer is deleted again so no orphan survives.
func (s *AnswerService) CreateAnswer(qid, text, ansBy string) (*AnswerResponse, error) {
	id, ok := utils.ParseID(qid)
	if !ok {
		return nil, ErrInvalidID
	}

	answer := models.Answer{
		QuestionID: id,
		Text:       text,
		AnsBy:      ansBy,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		slog.Error("failed to create answer", "qid", qid, "err", err)
		return nil, err
	}

	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("failed to fetch question for answer", "qid", qid, "err", err)
		}
		// compensating delete, the answer must not outlive this call
		if delErr := s.db.Delete(&models.Answer{}, answer.ID).Error; delErr != nil {
			slog.Error("failed to roll back orphaned answer", "answer", answer.ID, "err", delErr)
		}
		return nil, ErrQuestionNotFound
	}

	return &AnswerResponse{
		ID:          utils.FormatID(answer.ID),
		Text:        answer.Text,
		AnsBy:       answer.AnsBy,
		AnsDateTime: answer.CreatedAt,
	}, nil
}
