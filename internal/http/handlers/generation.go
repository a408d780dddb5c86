package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/generation"
	"github.com/AndrivA89/question-forge/internal/http/response"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
	"github.com/AndrivA89/question-forge/internal/repository"
)

type GenerationHandler struct {
	gen QuestionGenerator
	log *logger.Logger
}

func NewGenerationHandler(gen QuestionGenerator, log *logger.Logger) *GenerationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GenerationHandler{gen: gen, log: log.With("handler", "GenerationHandler")}
}

func (h *GenerationHandler) fail(c *gin.Context, err error) {
	var repoErr *repository.Error
	switch {
	case errors.Is(err, generation.ErrUnknownType), errors.Is(err, generation.ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, err)
	case errors.As(err, &repoErr):
		response.Error(c, response.StatusFor(err), err)
	default:
		h.log.Error("generation failed", "error", err)
		response.Error(c, http.StatusBadGateway, fmt.Errorf("question generation failed"))
	}
}

// POST /generate/:type
func (h *GenerationHandler) Generate(c *gin.Context) {
	t, err := generation.ParseQuestionType(c.Param("type"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err)
		return
	}
	var req generation.Request
	if !bind(c, &req) {
		return
	}
	questions, err := h.gen.Generate(c.Request.Context(), t, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, fmt.Sprintf("Generated %d questions", len(questions)), questions)
}

// POST /generate/paper
func (h *GenerationHandler) GeneratePaper(c *gin.Context) {
	var req generation.PaperRequest
	if !bind(c, &req) {
		return
	}
	paper, err := h.gen.GeneratePaper(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Paper generated successfully", paper)
}
