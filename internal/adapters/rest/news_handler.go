package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newshub/news-service/internal/adapters/rest/middleware"
	"github.com/newshub/news-service/internal/news/application"
	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
)

// NewsHandler handles HTTP requests for news articles
type NewsHandler struct {
	*BaseHandler
	service *application.NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(base *BaseHandler, service *application.NewsService) *NewsHandler {
	return &NewsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateNewsAsAdmin creates a news article attributed to any author
func (h *NewsHandler) CreateNewsAsAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	news, err := h.service.CreateNewsAsAdmin(r.Context(), application.CreateNewsAdminParams{
		Title:    req.Title,
		Text:     req.Text,
		AuthorID: req.AuthorID,
	}, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainNewsToAPI(news), http.StatusCreated)
}

// CreateNewsAsJournalist creates a news article owned by the caller
func (h *NewsHandler) CreateNewsAsJournalist(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsJournalistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	news, err := h.service.CreateNewsAsJournalist(r.Context(), application.CreateNewsJournalistParams{
		Title: req.Title,
		Text:  req.Text,
	}, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainNewsToAPI(news), http.StatusCreated)
}

// UpdateNewsAsAdmin updates any news article
func (h *NewsHandler) UpdateNewsAsAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "news id")
	if !ok {
		return
	}

	var req UpdateNewsAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	news, err := h.service.UpdateNewsAsAdmin(r.Context(), id, application.UpdateNewsAdminParams{
		Title:    req.Title,
		Text:     req.Text,
		AuthorID: req.AuthorID,
	}, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainNewsToAPI(news), http.StatusOK)
}

// UpdateNewsAsJournalist updates a news article owned by the caller
func (h *NewsHandler) UpdateNewsAsJournalist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "news id")
	if !ok {
		return
	}

	var req UpdateNewsJournalistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	news, err := h.service.UpdateNewsAsJournalist(r.Context(), id, application.UpdateNewsJournalistParams{
		Title: req.Title,
		Text:  req.Text,
	}, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainNewsToAPI(news), http.StatusOK)
}

// DeleteNews deletes a news article together with its comments
func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "news id")
	if !ok {
		return
	}

	if err := h.service.DeleteNews(r.Context(), id, middleware.CredentialFromContext(r.Context())); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetNews retrieves a single news article
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "news id")
	if !ok {
		return
	}

	news, err := h.service.GetNews(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainNewsToAPI(news), http.StatusOK)
}

// ListNews returns a page of news articles
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)

	items, total, err := h.service.ListNews(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildNewsPage(items, total, filter), http.StatusOK)
}

// ListNewsByFilter returns a page of news articles whose title or text
// contains the "part" query parameter
func (h *NewsHandler) ListNewsByFilter(w http.ResponseWriter, r *http.Request) {
	part := r.URL.Query().Get("part")
	if part == "" || len(part) > maxFilterPartSize {
		h.WriteJSONError(w, r, "Invalid value for parameter 'part'", http.StatusBadRequest)
		return
	}

	filter := listFilterFromQuery(r)
	filter.SearchQuery = part

	items, total, err := h.service.ListNews(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildNewsPage(items, total, filter), http.StatusOK)
}

func buildNewsPage(items []*domain.News, total int, filter ports.ListFilter) Paginated[NewsResponse] {
	data := make([]NewsResponse, len(items))
	for i, news := range items {
		data[i] = domainNewsToAPI(news)
	}
	return newPaginated(data, total, filter)
}
