package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type MaterialHandler struct {
	log        *logger.Logger
	materials  repos.StudyMaterialsRepo
	generation services.GenerationService
}

func NewMaterialHandler(
	log *logger.Logger,
	materials repos.StudyMaterialsRepo,
	generation services.GenerationService,
) *MaterialHandler {
	return &MaterialHandler{
		log:        log.With("handler", "MaterialHandler"),
		materials:  materials,
		generation: generation,
	}
}

func (h *MaterialHandler) Get(c *gin.Context) {
	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	materials, err := h.materials.GetByLectureID(c.Request.Context(), nil, lectureID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, materials)
}

func (h *MaterialHandler) GenerateQuiz(c *gin.Context) {
	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	quiz, err := h.generation.EnsureQuiz(c.Request.Context(), lectureID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", quiz)
}

func (h *MaterialHandler) GenerateFlashcards(c *gin.Context) {
	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	flashcards, err := h.generation.EnsureFlashcards(c.Request.Context(), lectureID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", flashcards)
}
