package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/newshub/news-service/internal/news/application"
	"github.com/newshub/news-service/internal/news/ports"
)

// HistoryHandler handles HTTP requests for the news change history
type HistoryHandler struct {
	*BaseHandler
	service *application.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(base *BaseHandler, service *application.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetHistory returns the full change history of a news article
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	newsID, ok := h.ParseUUID(w, r, chi.URLParam(r, "newsId"), "news id")
	if !ok {
		return
	}

	filter := listFilterFromQuery(r)
	entries, total, err := h.service.HistoryForAllTime(r.Context(), newsID, filter.Limit, filter.Offset)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildHistoryPage(entries, total, filter), http.StatusOK)
}

// GetHistoryForPeriod returns the change history of a news article
// restricted to the open interval (start, end). Bounds are passed as
// RFC 3339 "start" and "end" query parameters.
func (h *HistoryHandler) GetHistoryForPeriod(w http.ResponseWriter, r *http.Request) {
	newsID, ok := h.ParseUUID(w, r, chi.URLParam(r, "newsId"), "news id")
	if !ok {
		return
	}

	start, ok := h.parseTime(w, r, "start")
	if !ok {
		return
	}
	end, ok := h.parseTime(w, r, "end")
	if !ok {
		return
	}

	filter := listFilterFromQuery(r)
	entries, total, err := h.service.HistoryForPeriod(r.Context(), newsID, start, end, filter.Limit, filter.Offset)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildHistoryPage(entries, total, filter), http.StatusOK)
}

func (h *HistoryHandler) parseTime(w http.ResponseWriter, r *http.Request, param string) (time.Time, bool) {
	raw := r.URL.Query().Get(param)
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.WriteJSONError(w, r, "Invalid value for parameter '"+param+"'", http.StatusBadRequest)
		return time.Time{}, false
	}
	return parsed, true
}

func buildHistoryPage(entries []application.HistoryEntry, total int, filter ports.ListFilter) Paginated[HistoryEntryResponse] {
	data := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		data[i] = historyEntryToAPI(entry)
	}
	return newPaginated(data, total, filter)
}
