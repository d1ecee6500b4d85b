package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/newshub/news-service/internal/news/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return. The PostgreSQL implementation
// translates pgx.ErrNoRows (and the comments foreign-key violation)
// to these errors.
var (
	// ErrNewsNotFound is returned when a news article cannot be found
	ErrNewsNotFound = errors.New("news not found")

	// ErrCommentNotFound is returned when a comment cannot be found
	ErrCommentNotFound = errors.New("comment not found")
)

// ListFilter contains filtering and pagination options for list views
type ListFilter struct {
	// SearchQuery filters by substring match on title and text
	// (comment listings match on text only)
	SearchQuery string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns a sensible default filter
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 20, Offset: 0}
}

// TimeWindow bounds a revision query. Both ends are exclusive: a
// revision at exactly Start or End is outside the window.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// RevisionFilter contains windowing and pagination options for the
// revision log. The window is applied inside the query, before
// pagination, so counts reflect in-window revisions only.
type RevisionFilter struct {
	Window *TimeWindow // nil means all time

	Limit  int
	Offset int
}

// NewsRepository defines the interface for news persistence
type NewsRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx pgx.Tx) NewsRepository

	// Create saves a new news article
	Create(ctx context.Context, news *domain.News) error

	// FindByID retrieves a news article by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error)

	// Update modifies an existing news article
	Update(ctx context.Context, news *domain.News) error

	// Delete removes a news article
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves news articles matching the filter, newest first
	List(ctx context.Context, filter ListFilter) ([]*domain.News, error)

	// Count returns the total number of news articles matching the filter
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx pgx.Tx) CommentRepository

	// Create saves a new comment. A dangling news reference is returned
	// as ErrNewsNotFound, never as a raw constraint violation.
	Create(ctx context.Context, comment *domain.Comment) error

	// FindByID retrieves a comment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Update modifies an existing comment
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAllByNewsID retrieves the comments of one news article, oldest first
	FindAllByNewsID(ctx context.Context, newsID uuid.UUID, filter ListFilter) ([]*domain.Comment, error)

	// DeleteAllByNewsID removes all comments of a news article and
	// returns how many were deleted. Used by the cascading news delete.
	DeleteAllByNewsID(ctx context.Context, newsID uuid.UUID) (int, error)

	// List retrieves comments matching the filter, newest first
	List(ctx context.Context, filter ListFilter) ([]*domain.Comment, error)

	// Count returns the total number of comments matching the filter
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// RevisionRepository defines the interface for the append-only revision
// log. There are no update or delete operations by design.
type RevisionRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx pgx.Tx) RevisionRepository

	// Append adds a revision to the log
	Append(ctx context.Context, revision *domain.Revision) error

	// FindByNewsID retrieves revisions for a news id, oldest first,
	// window and pagination applied inside the query
	FindByNewsID(ctx context.Context, newsID uuid.UUID, filter RevisionFilter) ([]domain.Revision, error)

	// CountByNewsID returns the number of revisions matching the filter
	// (window applied, pagination ignored)
	CountByNewsID(ctx context.Context, newsID uuid.UUID, filter RevisionFilter) (int, error)

	// ExistsForNews reports whether the news id has ever produced a
	// revision, i.e. whether it exists now or has ever existed
	ExistsForNews(ctx context.Context, newsID uuid.UUID) (bool, error)
}
