package handlers

import (
	"net/http"
	"time"

	"aioverflow/internal/services"
	"aioverflow/internal/utils"

	"github.com/gin-gonic/gin"
)

const tagCountsCacheKey = "tag:counts"

type TagHandler struct {
	tags *services.TagService
}

func NewTagHandler(tags *services.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// GetTagsWithQuestionNumber lists every tag with its question count, cached
// for a minute and invalidated on question creation.
func (h *TagHandler) GetTagsWithQuestionNumber(c *gin.Context) {
	if cached := utils.GetCache().Get(tagCountsCacheKey); cached != nil {
		if counts, ok := cached.([]services.TagCount); ok {
			c.JSON(http.StatusOK, counts)
			return
		}
	}

	counts, err := h.tags.TagsWithQuestionCount()
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.GetCache().Set(tagCountsCacheKey, counts, 1*time.Minute)
	c.JSON(http.StatusOK, counts)
}
