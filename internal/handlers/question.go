package handlers

import (
	"errors"
	"net/http"

	"aioverflow/internal/services"
	"aioverflow/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxCommentLength = 1000

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type addQuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Text    string `json:"text" binding:"required"`
	AskedBy string `json:"asked_by" binding:"required"`
	Tags    []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

// AddQuestion creates a question, lazily creating unseen tags.
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req addQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "title, text and asked_by are required")
		return
	}

	tagNames := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		tagNames = append(tagNames, t.Name)
	}

	question, err := h.questions.CreateQuestion(req.Title, req.Text, req.AskedBy, tagNames)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// the tag listing is served from cache, a new question changes the counts
	utils.GetCache().Delete(tagCountsCacheKey)

	c.JSON(http.StatusOK, question)
}

// GetQuestions lists questions filtered by the order and search query
// parameters. An unknown order is a 400; fetch failures surface as an empty
// list by design.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questions.FindQuestions(c.Query("order"), c.Query("search"))
	if err != nil {
		if errors.Is(err, services.ErrUnknownOrder) {
			jsonError(c, http.StatusBadRequest, "unknown order, must be newest, unanswered or active")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestionByID returns one question and bumps its view counter.
func (h *QuestionHandler) GetQuestionByID(c *gin.Context) {
	question := h.questions.FindQuestionByID(c.Param("qid"))
	if question == nil {
		jsonError(c, http.StatusNotFound, "Question not found")
		return
	}
	c.JSON(http.StatusOK, question)
}

// GetAIAnswer proxies the question to the LLM. The route is rate limited
// upstream of this handler.
func (h *QuestionHandler) GetAIAnswer(c *gin.Context) {
	answer, err := h.questions.GetAIAnswer(c.Param("qid"))
	if err != nil {
		jsonError(c, http.StatusNotFound, "Question not found")
		return
	}
	c.JSON(http.StatusOK, answer)
}

// UpvoteQuestion adds one vote and returns the new total.
func (h *QuestionHandler) UpvoteQuestion(c *gin.Context) {
	votes, err := h.questions.UpvoteQuestion(c.Param("qid"))
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			jsonError(c, http.StatusNotFound, "Question not found")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upvoted", "votes": votes})
}

type addCommentRequest struct {
	Text      *string `json:"text"`
	CommentBy string  `json:"comment_by"`
}

// AddCommentToQuestion validates and appends a comment. Validation failures
// are rejected before any persistence attempt.
func (h *QuestionHandler) AddCommentToQuestion(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Comment text is required and must be a string")
		return
	}
	if req.Text == nil || *req.Text == "" {
		jsonError(c, http.StatusBadRequest, "Comment text is required and must be a string")
		return
	}
	if len(*req.Text) > maxCommentLength {
		jsonError(c, http.StatusBadRequest, "Comment text is too long")
		return
	}

	comment, err := h.questions.AddComment(c.Param("qid"), *req.Text, req.CommentBy)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			jsonError(c, http.StatusNotFound, "Question not found")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Error adding comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}
