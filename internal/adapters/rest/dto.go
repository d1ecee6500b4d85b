package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/newshub/news-service/internal/news/application"
	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
)

// validate is the shared validator instance; validator.Validate is
// thread-safe and caches struct metadata.
var validate = validator.New()

// Request DTOs

// CreateNewsAdminRequest is the admin creation payload; the author may
// be any existing user.
type CreateNewsAdminRequest struct {
	Title    string    `json:"title" validate:"required,min=5,max=100"`
	Text     string    `json:"text" validate:"required,min=5,max=500"`
	AuthorID uuid.UUID `json:"idAuthor" validate:"required"`
}

// CreateNewsJournalistRequest is the journalist creation payload;
// authorship is always the caller.
type CreateNewsJournalistRequest struct {
	Title string `json:"title" validate:"required,min=5,max=100"`
	Text  string `json:"text" validate:"required,min=5,max=500"`
}

// UpdateNewsAdminRequest is the admin update payload
type UpdateNewsAdminRequest struct {
	Title    string    `json:"title" validate:"required,min=5,max=100"`
	Text     string    `json:"text" validate:"required,min=5,max=500"`
	AuthorID uuid.UUID `json:"idAuthor" validate:"required"`
}

// UpdateNewsJournalistRequest is the journalist update payload
type UpdateNewsJournalistRequest struct {
	Title string `json:"title" validate:"required,min=5,max=100"`
	Text  string `json:"text" validate:"required,min=5,max=500"`
}

// CreateCommentRequest is the comment creation payload
type CreateCommentRequest struct {
	Text   string    `json:"text" validate:"required,min=3,max=500"`
	NewsID uuid.UUID `json:"idNews" validate:"required"`
}

// UpdateCommentRequest is the comment update payload
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=3,max=500"`
}

// Response DTOs

// NewsResponse is the wire representation of a news article
type NewsResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	AuthorID  uuid.UUID  `json:"idAuthor"`
	CreatedBy uuid.UUID  `json:"createdBy"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CommentResponse is the wire representation of a comment
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Username  string     `json:"username"`
	NewsID    uuid.UUID  `json:"idNews"`
	CreatedBy uuid.UUID  `json:"createdBy"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// HistoryEntryResponse is one rendered history line
type HistoryEntryResponse struct {
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"createdAt"`
	Message   string    `json:"message"`
}

// NewsWithCommentsResponse pairs a news article with a page of comments
type NewsWithCommentsResponse struct {
	News     NewsResponse      `json:"news"`
	Comments []CommentResponse `json:"comments"`
}

// PaginationMeta describes one page of a collection
type PaginationMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
}

// Paginated is a page of response items plus pagination metadata
type Paginated[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func newPaginated[T any](data []T, total int, filter ports.ListFilter) Paginated[T] {
	itemsPerPage := filter.Limit
	if itemsPerPage == 0 {
		itemsPerPage = 20
	}
	currentPage := (filter.Offset / itemsPerPage) + 1
	totalPages := (total + itemsPerPage - 1) / itemsPerPage

	if data == nil {
		data = []T{}
	}

	return Paginated[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:   total,
			ItemsPerPage: itemsPerPage,
			CurrentPage:  currentPage,
			TotalPages:   totalPages,
		},
	}
}

// Conversions

func domainNewsToAPI(news *domain.News) NewsResponse {
	resp := NewsResponse{
		ID:        news.ID,
		Title:     news.Title,
		Text:      news.Text,
		AuthorID:  news.AuthorID,
		CreatedBy: news.CreatedBy,
		CreatedAt: news.CreatedAt,
		UpdatedAt: news.UpdatedAt,
	}
	if news.UpdatedBy != uuid.Nil {
		updatedBy := news.UpdatedBy
		resp.UpdatedBy = &updatedBy
	}
	return resp
}

func domainCommentToAPI(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Username:  comment.Username,
		NewsID:    comment.NewsID,
		CreatedBy: comment.CreatedBy,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.UpdatedBy != uuid.Nil {
		updatedBy := comment.UpdatedBy
		resp.UpdatedBy = &updatedBy
	}
	return resp
}

func historyEntryToAPI(entry application.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		Seq:       entry.Seq,
		CreatedAt: entry.CreatedAt,
		Message:   entry.Message,
	}
}

// Query parameter helpers

const (
	maxPageSize       = 100
	maxFilterPartSize = 50
)

// listFilterFromQuery builds a ListFilter from page/size query params.
// Pages are 1-based; out-of-range values fall back to defaults.
func listFilterFromQuery(r *http.Request) ports.ListFilter {
	filter := ports.DefaultListFilter()

	if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && size > 0 && size <= maxPageSize {
		filter.Limit = size
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	return filter
}

// validationMessage renders the first violation as a client-facing
// message naming the offending field.
func validationMessage(err error) string {
	if violations, ok := err.(validator.ValidationErrors); ok && len(violations) > 0 {
		return "Invalid value for field '" + violations[0].Field() + "'"
	}
	return "Invalid request body"
}
