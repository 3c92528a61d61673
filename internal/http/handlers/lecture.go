package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type LectureHandler struct {
	log        *logger.Logger
	lectures   repos.LectureRepo
	generation services.GenerationService
	youtube    services.YouTubeService
	extractor  services.TextExtractor
	recording  services.RecordingService
}

func NewLectureHandler(
	log *logger.Logger,
	lectures repos.LectureRepo,
	generation services.GenerationService,
	youtube services.YouTubeService,
	extractor services.TextExtractor,
	recording services.RecordingService,
) *LectureHandler {
	return &LectureHandler{
		log:        log.With("handler", "LectureHandler"),
		lectures:   lectures,
		generation: generation,
		youtube:    youtube,
		extractor:  extractor,
		recording:  recording,
	}
}

func (h *LectureHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", errors.New("user_id query parameter required"))
		return
	}

	var subjectID *uuid.UUID
	if raw := c.Query("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
			return
		}
		subjectID = &id
	}

	lectures, err := h.lectures.GetByUserID(c.Request.Context(), nil, userID, subjectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, lectures)
}

func (h *LectureHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	lecture, err := h.lectures.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, lecture)
}

// ingestForm holds the form fields shared by every creation route.
type ingestForm struct {
	userID      string
	subjectID   *uuid.UUID
	lectureName string
}

func (h *LectureHandler) bindIngestForm(c *gin.Context) (*ingestForm, bool) {
	userID := c.PostForm("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", errors.New("user_id form field required"))
		return nil, false
	}

	form := &ingestForm{
		userID:      userID,
		lectureName: strings.TrimSpace(c.PostForm("lecture_name")),
	}
	if raw := strings.TrimSpace(c.PostForm("subject_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
			return nil, false
		}
		form.subjectID = &id
	}
	return form, true
}

func (h *LectureHandler) create(c *gin.Context, form *ingestForm, transcript, sourceType, sourceRef string) {
	result, err := h.generation.CreateLecture(c.Request.Context(), services.CreateLectureInput{
		UserID:      form.userID,
		SubjectID:   form.subjectID,
		Transcript:  transcript,
		SourceType:  sourceType,
		SourceRef:   sourceRef,
		LectureName: form.lectureName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lecture": result.Lecture, "title": result.Lecture.Title})
}

func (h *LectureHandler) FromYouTube(c *gin.Context) {
	form, ok := h.bindIngestForm(c)
	if !ok {
		return
	}
	youtubeURL := c.PostForm("youtube_url")
	if youtubeURL == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_youtube_url", errors.New("youtube_url form field required"))
		return
	}

	transcript, err := h.youtube.ExtractTranscript(c.Request.Context(), youtubeURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.create(c, form, transcript, domain.SourceYouTube, youtubeURL)
}

func (h *LectureHandler) FromTranscript(c *gin.Context) {
	form, ok := h.bindIngestForm(c)
	if !ok {
		return
	}

	clean, err := services.ValidateTranscript(c.PostForm("transcript"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.create(c, form, clean, domain.SourceTranscript, "")
}

func (h *LectureHandler) FromFile(c *gin.Context) {
	form, ok := h.bindIngestForm(c)
	if !ok {
		return
	}

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

	transcript, sourceType, err := h.extractor.ExtractFile(fileHeader.Filename, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.create(c, form, transcript, sourceType, fileHeader.Filename)
}

func (h *LectureHandler) FromRecording(c *gin.Context) {
	form, ok := h.bindIngestForm(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_audio", err)
		return
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_audio", err)
		return
	}

	transcript, err := h.recording.Transcribe(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.create(c, form, transcript, domain.SourceRecording, "")
}

func (h *LectureHandler) Move(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
		return
	}

	if err := h.lectures.UpdateSubject(c.Request.Context(), nil, id, &subjectID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *LectureHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	if err := h.lectures.DeleteByID(c.Request.Context(), nil, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
