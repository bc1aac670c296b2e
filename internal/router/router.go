package router

import (
	"time"

	"aioverflow/internal/handlers"
	"aioverflow/internal/middleware"
	"aioverflow/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// RegisterRoutes wires every endpoint. Paths mirror what the SPA client
// calls.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	questionService := services.NewQuestionService(db, services.GetLLMService())
	answerService := services.NewAnswerService(db)
	tagService := services.NewTagService(db)

	authHandler := handlers.NewAuthHandler(db)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(answerService)
	tagHandler := handlers.NewTagHandler(tagService)

	// the AI path is the only externally latent operation, 5 calls per
	// minute per IP, sliding window
	aiLimiter := middleware.NewAIRateLimiter(5, time.Minute)
	// coarse per-IP throttle on question submission
	writeLimiter := middleware.NewIPRateLimiter(rate.Every(2*time.Second), 5)

	r.Use(middleware.LoadUser(db))

	// User routes
	r.POST("/user/signup", authHandler.Signup)
	r.POST("/user/login", authHandler.Login)
	r.GET("/user/logout", authHandler.Logout)

	// Tag routes
	r.GET("/tag/getTagsWithQuestionNumber", tagHandler.GetTagsWithQuestionNumber)

	// Question routes
	r.GET("/question/getQuestion", questionHandler.GetQuestions)
	r.GET("/question/getQuestionById/:qid", questionHandler.GetQuestionByID)
	r.GET("/question/getAIAnswer/:qid", aiLimiter.Handler(), questionHandler.GetAIAnswer)
	r.POST("/question/addQuestion", writeLimiter.Handler(), questionHandler.AddQuestion)
	r.POST("/question/upvoteQuestion/:qid", questionHandler.UpvoteQuestion)
	r.POST("/question/addCommentToQuestion/:qid", questionHandler.AddCommentToQuestion)

	// Answer routes
	r.POST("/answer/addAnswer", answerHandler.AddAnswer)
}
