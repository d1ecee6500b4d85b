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

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	*BaseHandler
	service *application.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(base *BaseHandler, service *application.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateComment creates a comment on an existing news article
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), application.CreateCommentParams{
		Text:   req.Text,
		NewsID: req.NewsID,
	}, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusCreated)
}

// UpdateComment replaces the text of a comment
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "comment id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.WriteJSONError(w, r, validationMessage(err), http.StatusBadRequest)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), id, req.Text, middleware.CredentialFromContext(r.Context()))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusOK)
}

// DeleteComment removes a comment
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "comment id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), id, middleware.CredentialFromContext(r.Context())); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetComment retrieves a single comment
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "comment id")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusOK)
}

// GetNewsWithComments retrieves a news article with a page of its comments
func (h *CommentHandler) GetNewsWithComments(w http.ResponseWriter, r *http.Request) {
	newsID, ok := h.ParseUUID(w, r, chi.URLParam(r, "newsId"), "news id")
	if !ok {
		return
	}

	page, err := h.service.GetNewsWithComments(r.Context(), newsID, listFilterFromQuery(r))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	comments := make([]CommentResponse, len(page.Comments))
	for i, comment := range page.Comments {
		comments[i] = domainCommentToAPI(comment)
	}

	h.WriteJSONResponse(w, r, NewsWithCommentsResponse{
		News:     domainNewsToAPI(page.News),
		Comments: comments,
	}, http.StatusOK)
}

// ListComments returns a page of comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)

	items, total, err := h.service.ListComments(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildCommentPage(items, total, filter), http.StatusOK)
}

// ListCommentsByFilter returns a page of comments whose text contains
// the "part" query parameter
func (h *CommentHandler) ListCommentsByFilter(w http.ResponseWriter, r *http.Request) {
	part := r.URL.Query().Get("part")
	if part == "" || len(part) > maxFilterPartSize {
		h.WriteJSONError(w, r, "Invalid value for parameter 'part'", http.StatusBadRequest)
		return
	}

	filter := listFilterFromQuery(r)
	filter.SearchQuery = part

	items, total, err := h.service.ListComments(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildCommentPage(items, total, filter), http.StatusOK)
}

func buildCommentPage(items []*domain.Comment, total int, filter ports.ListFilter) Paginated[CommentResponse] {
	data := make([]CommentResponse, len(items))
	for i, comment := range items {
		data[i] = domainCommentToAPI(comment)
	}
	return newPaginated(data, total, filter)
}
