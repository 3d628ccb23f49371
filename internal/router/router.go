package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Uttam-Mahata/questcart/internal/config"
	"github.com/Uttam-Mahata/questcart/internal/handler"
	"github.com/Uttam-Mahata/questcart/internal/middleware"
	"github.com/Uttam-Mahata/questcart/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam     *handler.ExamHandler
	Section  *handler.SectionHandler
	Question *handler.QuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve disk-stored media statically with aggressive caching (1 year).
	// Irrelevant when the s3 backend is active, harmless either way.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Generation hits the AI provider, so it gets its own tight limit.
	genLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := router.Group("/api/v1")
	{
		api.POST("/exams", handlers.Exam.CreateExam)
		api.GET("/exams", handlers.Exam.ListExams)
		api.GET("/exams/:id", handlers.Exam.GetExam)

		api.POST("/sections/:id/questions/generate", genLimiter.Middleware(), handlers.Question.GenerateQuestions)
		api.GET("/sections/:id/questions", handlers.Question.ListQuestions)
		api.POST("/sections/:id/options/image", handlers.Question.UploadOptionImage)
		api.POST("/sections/:id/syllabus", handlers.Section.UploadSyllabus)

		api.GET("/questions/:id", handlers.Question.GetQuestion)
		api.PATCH("/questions/:id", handlers.Question.UpdateQuestion)
		api.POST("/questions/:id/image", handlers.Question.SetQuestionImage)
		api.POST("/questions/:id/explanation", genLimiter.Middleware(), handlers.Question.RegenerateExplanation)
	}

	return router
}
