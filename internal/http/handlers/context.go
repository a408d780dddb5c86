package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/http/response"
)

type ContextHandler struct {
	svc CurriculumService
}

func NewContextHandler(svc CurriculumService) *ContextHandler {
	return &ContextHandler{svc: svc}
}

type syllabusContextRequest struct {
	SyllabusID string   `json:"syllabus_id"`
	TopicIDs   []string `json:"topic_ids"`
}

type questionsContextRequest struct {
	TopicIDs     []string `json:"topic_ids"`
	QuestionType string   `json:"question_type"`
	MaxExamples  int      `json:"max_examples"`
}

type uniquenessRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
	QuestionType string `json:"question_type"`
}

// POST /context/syllabus
func (h *ContextHandler) Syllabus(c *gin.Context) {
	var req syllabusContextRequest
	if !bind(c, &req) {
		return
	}
	response.Result(c, http.StatusOK, h.svc.SyllabusContext(c.Request.Context(), req.SyllabusID, req.TopicIDs))
}

// POST /context/questions
func (h *ContextHandler) Questions(c *gin.Context) {
	var req questionsContextRequest
	if !bind(c, &req) {
		return
	}
	response.Result(c, http.StatusOK, h.svc.QuestionsContext(c.Request.Context(), req.TopicIDs, req.QuestionType, req.MaxExamples))
}

// POST /context/uniqueness
func (h *ContextHandler) Uniqueness(c *gin.Context) {
	var req uniquenessRequest
	if !bind(c, &req) {
		return
	}
	response.Result(c, http.StatusOK, h.svc.CheckQuestionUniqueness(c.Request.Context(), req.QuestionText, req.QuestionType))
}
