package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/newshub/news-service/internal/platform/apperror"
	"github.com/newshub/news-service/internal/platform/logger"
)

// ErrorResponse is the error envelope returned on every failed request.
// The field names and shape are part of the wire contract; error_status
// carries the numeric HTTP status code.
type ErrorResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	ErrorMessage string    `json:"error_message"`
	ErrorStatus  int       `json:"error_status"`
}

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// WriteJSONError writes the error envelope with the given message and status
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	envelope := ErrorResponse{
		Timestamp:    time.Now(),
		ErrorMessage: message,
		ErrorStatus:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps an application error to the error envelope. AppErrors
// carry their own HTTP status; anything else is a 500 with a generic
// message so internal error text never leaks to clients.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err, http.StatusInternalServerError)

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", err,
			"code", appErr.Code,
			"business_code", appErr.BusinessCode,
		)
	}

	h.WriteJSONError(w, r, appErr.Message, appErr.HTTPStatus)
}

// ParseUUID parses a path or query value as a UUID, writing a 400
// envelope and returning false when it is malformed.
func (h *BaseHandler) ParseUUID(w http.ResponseWriter, r *http.Request, value string, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.WriteJSONError(w, r, "Invalid "+paramName, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
