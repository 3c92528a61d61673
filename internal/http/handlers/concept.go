package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type ConceptHandler struct {
	log        *logger.Logger
	studyTools services.StudyToolsService
}

func NewConceptHandler(log *logger.Logger, studyTools services.StudyToolsService) *ConceptHandler {
	return &ConceptHandler{
		log:        log.With("handler", "ConceptHandler"),
		studyTools: studyTools,
	}
}

type conceptMapRequest struct {
	LectureID string `json:"lecture_id"`
	Title     string `json:"title" binding:"required"`
	Notes     string `json:"notes" binding:"required"`
}

// Generate builds a concept map from caller-supplied notes. Nothing is
// persisted; the lecture_id only identifies the request in logs.
func (h *ConceptHandler) Generate(c *gin.Context) {
	var req conceptMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	conceptMap, err := h.studyTools.ConceptMap(c.Request.Context(), req.Title, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, conceptMap)
}
