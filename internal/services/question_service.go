package services

import (
	"errors"
	"log/slog"

	"aioverflow/internal/models"
	"aioverflow/internal/utils"

	"gorm.io/gorm"
)

// aiFallbackAnswer is returned whenever the AI collaborator fails, so the
// client always gets a displayable string.
const aiFallbackAnswer = "Sorry, I could not generate an answer at this time."

type QuestionService struct {
	db   *gorm.DB
	tags *TagService
	llm  *LLMService
}

func NewQuestionService(db *gorm.DB, llm *LLMService) *QuestionService {
	return &QuestionService{
		db:   db,
		tags: NewTagService(db),
		llm:  llm,
	}
}

// recentQuestions fetches every question newest-first with tags, answers
// (newest-first) and comments populated.
func (s *QuestionService) recentQuestions() ([]RawQuestion, error) {
	var questions []models.Question
	err := s.db.
		Preload("Tags").
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Comments").
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	raws := make([]RawQuestion, 0, len(questions))
	for i := range questions {
		raws = append(raws, *RawFromModel(&questions[i]))
	}
	return raws, nil
}

// FindQuestions is the list entry point: fetch, format, order, filter.
// An unrecognized order is rejected up front with ErrUnknownOrder; any
// failure past that point degrades to an empty list and is only logged.
func (s *QuestionService) FindQuestions(order, search string) ([]QuestionResponse, error) {
	sortOrder, err := parseSortOrder(order)
	if err != nil {
		return nil, err
	}

	raws, err := s.recentQuestions()
	if err != nil {
		slog.Error("failed to fetch questions", "err", err)
		return []QuestionResponse{}, nil
	}

	questions := make([]QuestionResponse, 0, len(raws))
	for i := range raws {
		if q := FormatQuestion(&raws[i]); q != nil {
			questions = append(questions, *q)
		}
	}

	questions = applyOrder(sortOrder, questions)

	if search != "" {
		questions = filterBySearch(questions, search)
	}
	return questions, nil
}

// FindQuestionByID fetches one question and bumps its view counter. Empty or
// malformed ids are rejected without touching the database. Not-found and
// storage errors both yield nil; the returned question reflects the
// post-increment view count.
func (s *QuestionService) FindQuestionByID(qid string) *QuestionResponse {
	id, ok := utils.ParseID(qid)
	if !ok {
		return nil
	}

	var question models.Question
	err := s.db.
		Preload("Tags").
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Comments").
		First(&question, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("failed to fetch question", "qid", qid, "err", err)
		}
		return nil
	}

	// Single-column increment done in the database, so concurrent fetches
	// cannot lose updates.
	err = s.db.Model(&models.Question{}).
		Where("id = ?", question.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		slog.Error("failed to increment views", "qid", qid, "err", err)
		return nil
	}
	question.Views++

	resp := FormatQuestion(RawFromModel(&question))
	if resp != nil {
		resp.TextHTML = utils.RenderMarkdown(resp.Text)
		for i := range resp.Answers {
			resp.Answers[i].TextHTML = utils.RenderMarkdown(resp.Answers[i].Text)
		}
	}
	return resp
}

// CreateQuestion stores a new question, lazily creating any unseen tags.
func (s *QuestionService) CreateQuestion(title, text, askedBy string, tagNames []string) (*QuestionResponse, error) {
	tags, err := s.tags.FindOrCreate(tagNames)
	if err != nil {
		slog.Error("failed to resolve tags", "err", err)
		return nil, err
	}

	question := models.Question{
		Title:   title,
		Text:    text,
		AskedBy: askedBy,
		Tags:    tags,
	}
	if err := s.db.Create(&question).Error; err != nil {
		slog.Error("failed to create question", "err", err)
		return nil, err
	}

	return FormatQuestion(RawFromModel(&question)), nil
}

// UpvoteQuestion adds one vote, unconditionally. There is no server-side
// duplicate-vote guard; the client keeps its own record of what it voted on.
// Returns the new vote total.
func (s *QuestionService) UpvoteQuestion(qid string) (int, error) {
	id, ok := utils.ParseID(qid)
	if !ok {
		return 0, ErrQuestionNotFound
	}

	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("failed to fetch question for upvote", "qid", qid, "err", err)
		}
		return 0, ErrQuestionNotFound
	}

	err := s.db.Model(&models.Question{}).
		Where("id = ?", question.ID).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error
	if err != nil {
		slog.Error("failed to increment votes", "qid", qid, "err", err)
		return 0, err
	}

	// reload so the caller sees the real total, not a local guess
	if err := s.db.First(&question, id).Error; err != nil {
		return 0, err
	}
	return question.Votes, nil
}

// AddComment appends a sanitized comment to a question. The author defaults
// to "anonymous". Input length and type checks happen at the handler; this
// only distinguishes missing questions from persistence failures.
func (s *QuestionService) AddComment(qid, text, commentBy string) (*CommentResponse, error) {
	id, ok := utils.ParseID(qid)
	if !ok {
		return nil, ErrQuestionNotFound
	}

	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("failed to fetch question for comment", "qid", qid, "err", err)
		}
		return nil, ErrQuestionNotFound
	}

	if commentBy == "" {
		commentBy = "anonymous"
	}

	comment := models.Comment{
		QuestionID: question.ID,
		Text:       utils.SanitizeComment(text),
		CommentBy:  commentBy,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		slog.Error("failed to save comment", "qid", qid, "err", err)
		return nil, ErrCommentSave
	}

	return &CommentResponse{
		Text:        comment.Text,
		CommentBy:   comment.CommentBy,
		CommentTime: comment.CreatedAt,
	}, nil
}

// GetAIAnswer asks the LLM collaborator for an answer to the question. Any
// upstream failure is absorbed into a fixed fallback string; only a missing
// question is surfaced as an error.
func (s *QuestionService) GetAIAnswer(qid string) (string, error) {
	id, ok := utils.ParseID(qid)
	if !ok {
		return "", ErrQuestionNotFound
	}

	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("failed to fetch question for AI answer", "qid", qid, "err", err)
		}
		return "", ErrQuestionNotFound
	}

	answer, err := s.llm.GenerateAnswer(question.Title, question.Text)
	if err != nil {
		slog.Error("AI answer generation failed", "qid", qid, "err", err)
		return aiFallbackAnswer, nil
	}
	return answer, nil
}
