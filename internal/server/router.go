package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/xelyqor/xelyqor-backend/internal/http/handlers"
	"github.com/xelyqor/xelyqor-backend/internal/http/middleware"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	Health   *handlers.HealthHandler
	Subject  *handlers.SubjectHandler
	Lecture  *handlers.LectureHandler
	Material *handlers.MaterialHandler
	Chat     *handlers.ChatHandler
	Solver   *handlers.SolverHandler
	Concept  *handlers.ConceptHandler
	Settings *handlers.SettingsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("xelyqor-backend"))
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/health", cfg.Health.Check)

	subjects := router.Group("/subjects")
	{
		subjects.GET("", cfg.Subject.List)
		subjects.POST("", cfg.Subject.Create)
		subjects.DELETE("/:id", cfg.Subject.Delete)
		subjects.POST("/summary", cfg.Subject.CourseSummary)
		subjects.POST("/study-plan", cfg.Subject.StudyPlan)
		subjects.POST("/practice-exam", cfg.Subject.PracticeExam)
	}

	lectures := router.Group("/lectures")
	{
		lectures.GET("", cfg.Lecture.List)
		lectures.GET("/:id", cfg.Lecture.Get)
		lectures.POST("/from-youtube", cfg.Lecture.FromYouTube)
		lectures.POST("/from-transcript", cfg.Lecture.FromTranscript)
		lectures.POST("/from-file", cfg.Lecture.FromFile)
		lectures.POST("/from-recording", cfg.Lecture.FromRecording)
		lectures.PATCH("/:id/move", cfg.Lecture.Move)
		lectures.DELETE("/:id", cfg.Lecture.Delete)
	}

	materials := router.Group("/materials")
	{
		materials.GET("/:lecture_id", cfg.Material.Get)
		materials.POST("/:lecture_id/generate-quiz", cfg.Material.GenerateQuiz)
		materials.POST("/:lecture_id/generate-flashcards", cfg.Material.GenerateFlashcards)
	}

	chat := router.Group("/chat")
	{
		chat.POST("", cfg.Chat.Lecture)
		chat.POST("/general", cfg.Chat.General)
	}

	solver := router.Group("/solver")
	{
		solver.POST("", cfg.Solver.Solve)
		solver.POST("/with-file", cfg.Solver.SolveWithFile)
	}

	router.POST("/concepts", cfg.Concept.Generate)

	settings := router.Group("/settings")
	{
		settings.GET("/:user_id", cfg.Settings.Get)
		settings.POST("", cfg.Settings.Save)
	}

	return router
}
