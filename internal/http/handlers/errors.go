package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

// respondServiceError maps service-layer failures onto the error taxonomy:
// validation 400, extraction remediation 422, parse 502, everything else
// (provider, database) an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTranscriptEmpty),
		errors.Is(err, services.ErrTranscriptTooShort),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.Is(err, services.ErrQuestionEmpty),
		errors.Is(err, services.ErrPDFNoText),
		errors.Is(err, services.ErrNoNotesFound),
		errors.Is(err, services.ErrNoLecturesFound):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrNoCaptions):
		response.RespondError(c, http.StatusUnprocessableEntity, "captions_unavailable", err)
	case isParseError(err):
		response.RespondError(c, http.StatusBadGateway, "ai_parse_failed", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

func isParseError(err error) bool {
	var parseErr *ai.ParseError
	return errors.As(err, &parseErr)
}
