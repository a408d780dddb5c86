package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/http/response"
)

type EvaluationHandler struct {
	svc CurriculumService
}

func NewEvaluationHandler(svc CurriculumService) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// GET /evaluation/syllabus/:syllabus_id/paper/:paper_id
func (h *EvaluationHandler) EvaluatePaper(c *gin.Context) {
	res := h.svc.EvaluatePaper(c.Request.Context(), c.Param("syllabus_id"), c.Param("paper_id"))
	response.Result(c, http.StatusOK, res)
}
