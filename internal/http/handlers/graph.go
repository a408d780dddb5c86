package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/http/response"
)

type GraphHandler struct {
	svc CurriculumService
}

func NewGraphHandler(svc CurriculumService) *GraphHandler {
	return &GraphHandler{svc: svc}
}

type syllabusCreate struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

type syllabusImport struct {
	Email    string              `json:"email" binding:"required,email"`
	Syllabus domain.SyllabusData `json:"syllabus_data"`
}

type topicCreate struct {
	ModuleNumber   string `json:"module_number" binding:"required"`
	ModuleName     string `json:"module_name" binding:"required"`
	Kind           string `json:"kind"`
	TopicNumber    string `json:"topic_number"`
	SubtopicNumber string `json:"subtopic_number"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Hours          int    `json:"hours"`
}

type pyqCreate struct {
	Email       string `json:"email" binding:"required,email"`
	Title       string `json:"title" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Year        string `json:"year" binding:"required"`
	ExamType    string `json:"exam_type" binding:"required"`
	Description string `json:"description"`
}

type questionCreate struct {
	Text         string   `json:"text" binding:"required"`
	Answer       string   `json:"answer"`
	QuestionType string   `json:"question_type"`
	Marks        int      `json:"marks"`
	TopicIDs     []string `json:"topic_ids"`
}

type emailParam struct {
	Email string `uri:"email" binding:"required,email"`
}

// bindEmail validates the :email path parameter and writes a 400 envelope
// when it is not an address.
func bindEmail(c *gin.Context) (string, bool) {
	var p emailParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid email %q", c.Param("email")))
		return "", false
	}
	return p.Email, true
}

// bind decodes the JSON body and writes a 400 envelope when it is malformed.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// POST /graph/syllabus
func (h *GraphHandler) CreateSyllabus(c *gin.Context) {
	var req syllabusCreate
	if !bind(c, &req) {
		return
	}
	response.Result(c, http.StatusOK, h.svc.SaveSyllabus(c.Request.Context(), req.Email, req.Name, req.Subject, req.Description))
}

// POST /graph/syllabus/import
func (h *GraphHandler) ImportSyllabus(c *gin.Context) {
	var req syllabusImport
	if !bind(c, &req) {
		return
	}
	response.Result(c, http.StatusOK, h.svc.ImportSyllabus(c.Request.Context(), req.Email, req.Syllabus))
}

// POST /graph/syllabus/:id/topic?parent_topic_id=
func (h *GraphHandler) AddTopic(c *gin.Context) {
	var req topicCreate
	if !bind(c, &req) {
		return
	}
	kind, err := domain.ParseTopicKind(strings.ToUpper(req.Kind))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" && kind != domain.KindModule {
		response.Error(c, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	fields := domain.TopicFields{
		Kind:           kind,
		TopicNumber:    req.TopicNumber,
		SubtopicNumber: req.SubtopicNumber,
		Name:           req.Name,
		Description:    req.Description,
		Hours:          req.Hours,
	}
	res := h.svc.AddTopic(c.Request.Context(), c.Param("id"), req.ModuleNumber, req.ModuleName, fields, c.Query("parent_topic_id"))
	response.Result(c, http.StatusOK, res)
}

// GET /graph/syllabus/user/:email
func (h *GraphHandler) ListUserSyllabi(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	response.Result(c, http.StatusOK, h.svc.GetUserSyllabi(c.Request.Context(), email))
}

// GET /graph/syllabus/:id/topics
func (h *GraphHandler) ListSyllabusTopics(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.GetSyllabusTopics(c.Request.Context(), c.Param("id")))
}

// POST /graph/pyq
func (h *GraphHandler) CreatePYQ(c *gin.Context) {
	var req pyqCreate
	if !bind(c, &req) {
		return
	}
	res := h.svc.SavePYQ(c.Request.Context(), req.Email, req.Title, req.Subject, req.Year, req.ExamType, req.Description)
	response.Result(c, http.StatusOK, res)
}

// POST /graph/pyq/:id/question
func (h *GraphHandler) AddQuestion(c *gin.Context) {
	var req questionCreate
	if !bind(c, &req) {
		return
	}
	res := h.svc.AddQuestionToPYQ(c.Request.Context(), c.Param("id"), domain.NewQuestion{
		Text:         req.Text,
		Answer:       req.Answer,
		QuestionType: req.QuestionType,
		Marks:        req.Marks,
		TopicIDs:     req.TopicIDs,
	})
	response.Result(c, http.StatusOK, res)
}

// GET /graph/pyq/user/:email
func (h *GraphHandler) ListUserPyqs(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	response.Result(c, http.StatusOK, h.svc.GetUserPyqs(c.Request.Context(), email))
}

// GET /graph/pyq/:id/questions
func (h *GraphHandler) ListPyqQuestions(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.GetPyqQuestions(c.Request.Context(), c.Param("id")))
}

// GET /graph/topic/:id
func (h *GraphHandler) GetTopic(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.GetTopic(c.Request.Context(), c.Param("id")))
}

// GET /graph/topic/:id/questions?question_type=
func (h *GraphHandler) ListTopicQuestions(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.FindQuestionsByTopic(c.Request.Context(), c.Param("id"), c.Query("question_type")))
}
