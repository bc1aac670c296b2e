package handlers

import (
	"errors"
	"net/http"

	"aioverflow/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answers *services.AnswerService
}

func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type addAnswerRequest struct {
	QID string `json:"qid" binding:"required"`
	Ans struct {
		Text  string `json:"text" binding:"required"`
		AnsBy string `json:"ans_by" binding:"required"`
	} `json:"ans" binding:"required"`
}

// AddAnswer creates an answer against a question. A missing question rolls
// the answer back and yields a 404.
func (h *AnswerHandler) AddAnswer(c *gin.Context) {
	var req addAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "qid and ans with text and ans_by are required")
		return
	}

	answer, err := h.answers.CreateAnswer(req.QID, req.Ans.Text, req.Ans.AnsBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			jsonError(c, http.StatusBadRequest, "Invalid question ID")
		case errors.Is(err, services.ErrQuestionNotFound):
			jsonError(c, http.StatusNotFound, "Question not found")
		default:
			jsonError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, answer)
}
