package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/AndrivA89/question-forge/internal/http/handlers"
	httpMW "github.com/AndrivA89/question-forge/internal/http/middleware"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

type RouterConfig struct {
	Logger *logger.Logger

	HealthHandler     *httpH.HealthHandler
	GraphHandler      *httpH.GraphHandler
	ContextHandler    *httpH.ContextHandler
	EvaluationHandler *httpH.EvaluationHandler
	GenerationHandler *httpH.GenerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if h := cfg.GraphHandler; h != nil {
		graph := r.Group("/graph")
		graph.POST("/syllabus", h.CreateSyllabus)
		graph.POST("/syllabus/import", h.ImportSyllabus)
		graph.POST("/syllabus/:id/topic", h.AddTopic)
		graph.GET("/syllabus/:id/topics", h.ListSyllabusTopics)
		graph.GET("/syllabus/user/:email", h.ListUserSyllabi)

		graph.POST("/pyq", h.CreatePYQ)
		graph.POST("/pyq/:id/question", h.AddQuestion)
		graph.GET("/pyq/:id/questions", h.ListPyqQuestions)
		graph.GET("/pyq/user/:email", h.ListUserPyqs)

		graph.GET("/topic/:id", h.GetTopic)
		graph.GET("/topic/:id/questions", h.ListTopicQuestions)
	}

	if h := cfg.ContextHandler; h != nil {
		ctx := r.Group("/context")
		ctx.POST("/syllabus", h.Syllabus)
		ctx.POST("/questions", h.Questions)
		ctx.POST("/uniqueness", h.Uniqueness)
	}

	if h := cfg.EvaluationHandler; h != nil {
		r.GET("/evaluation/syllabus/:syllabus_id/paper/:paper_id", h.EvaluatePaper)
	}

	if h := cfg.GenerationHandler; h != nil {
		r.POST("/generate/paper", h.GeneratePaper)
		r.POST("/generate/:type", h.Generate)
	}

	return r
}
