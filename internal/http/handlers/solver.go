package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type SolverHandler struct {
	log    *logger.Logger
	solver services.SolverService
}

func NewSolverHandler(log *logger.Logger, solver services.SolverService) *SolverHandler {
	return &SolverHandler{
		log:    log.With("handler", "SolverHandler"),
		solver: solver,
	}
}

type solveRequest struct {
	Question string `json:"question" binding:"required"`
	Subject  string `json:"subject"`
}

func (h *SolverHandler) Solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	solution, err := h.solver.Solve(c.Request.Context(), req.Question, req.Subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"solution": solution})
}

func (h *SolverHandler) SolveWithFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	solution, err := h.solver.SolveWithFile(c.Request.Context(),
		fileHeader.Filename, contentType, data,
		c.PostForm("question"), c.PostForm("subject"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"solution": solution})
}
