package handlers

import (
	"net/http"

	"vouchergen/internal/domain"
	"vouchergen/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error":   message,
		"code":    code,
		"details": details,
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Structural
// problems in an uploaded workbook are the client's to fix (422), a trip
// identity mismatch is a conflict between the two uploads (409).
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsTripMismatch(err):
		respondError(c, http.StatusConflict, "trip_mismatch", err.Error(), nil)
	case domain.IsHeaderNotFound(err):
		respondError(c, http.StatusUnprocessableEntity, "header_not_found", err.Error(), nil)
	case domain.IsNoServices(err):
		respondError(c, http.StatusUnprocessableEntity, "no_services_found", err.Error(), nil)
	case domain.IsEmptyRoster(err):
		respondError(c, http.StatusUnprocessableEntity, "empty_roster", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "voucher generation failed", nil)
	}
}
