package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type SubjectHandler struct {
	log        *logger.Logger
	subjects   repos.SubjectRepo
	studyTools services.StudyToolsService
	extractor  services.TextExtractor
}

func NewSubjectHandler(
	log *logger.Logger,
	subjects repos.SubjectRepo,
	studyTools services.StudyToolsService,
	extractor services.TextExtractor,
) *SubjectHandler {
	return &SubjectHandler{
		log:        log.With("handler", "SubjectHandler"),
		subjects:   subjects,
		studyTools: studyTools,
		extractor:  extractor,
	}
}

func (h *SubjectHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", errors.New("user_id query parameter required"))
		return
	}

	subjects, err := h.subjects.GetByUserID(c.Request.Context(), nil, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, subjects)
}

type createSubjectRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Colour string `json:"colour"`
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Colour == "" {
		req.Colour = domain.DefaultAvatarColour
	}

	subject, err := h.subjects.Create(c.Request.Context(), nil, &domain.Subject{
		UserID: req.UserID,
		Name:   req.Name,
		Colour: req.Colour,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
		return
	}

	if err := h.subjects.DeleteAndDetachLectures(c.Request.Context(), nil, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

type courseSummaryRequest struct {
	SubjectName string   `json:"subject_name" binding:"required"`
	LectureIDs  []string `json:"lecture_ids" binding:"required"`
}

func (h *SubjectHandler) CourseSummary(c *gin.Context) {
	var req courseSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ids, err := parseLectureIDs(req.LectureIDs)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_ids", err)
		return
	}

	summary, err := h.studyTools.CourseSummary(c.Request.Context(), req.SubjectName, ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

type studyPlanRequest struct {
	SubjectName string   `json:"subject_name" binding:"required"`
	LectureIDs  []string `json:"lecture_ids" binding:"required"`
	ExamDate    string   `json:"exam_date" binding:"required"`
}

func (h *SubjectHandler) StudyPlan(c *gin.Context) {
	var req studyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ids, err := parseLectureIDs(req.LectureIDs)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_ids", err)
		return
	}

	plan, err := h.studyTools.StudyPlan(c.Request.Context(), req.SubjectName, ids, req.ExamDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// PracticeExam is multipart: subject_name and lecture_ids (JSON array) as
// form fields, plus an optional past_paper PDF. A past paper that cannot be
// read is ignored rather than failing the request.
func (h *SubjectHandler) PracticeExam(c *gin.Context) {
	subjectName := c.PostForm("subject_name")
	if subjectName == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_subject_name", errors.New("subject_name form field required"))
		return
	}

	var rawIDs []string
	if err := json.Unmarshal([]byte(c.PostForm("lecture_ids")), &rawIDs); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_ids", err)
		return
	}
	ids, err := parseLectureIDs(rawIDs)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_ids", err)
		return
	}

	pastPaperText := ""
	if fileHeader, err := c.FormFile("past_paper"); err == nil {
		data, readErr := readUpload(fileHeader)
		if readErr != nil {
			h.log.Warn("past paper read failed, continuing without it", "error", readErr)
		} else if text, extractErr := h.extractor.ExtractPDF(data); extractErr != nil {
			h.log.Warn("past paper extraction failed, continuing without it", "error", extractErr)
		} else {
			pastPaperText = text
		}
	}

	exam, err := h.studyTools.PracticeExam(c.Request.Context(), subjectName, ids, pastPaperText)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, exam)
}

func parseLectureIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
