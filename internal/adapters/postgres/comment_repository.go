package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
	"github.com/newshub/news-service/internal/platform/postgres"
)

// pgForeignKeyViolation is the PostgreSQL error code for a foreign key
// constraint failure (class 23, integrity constraint violation).
const pgForeignKeyViolation = "23503"

// CommentRepository implements the ports.CommentRepository interface using PostgreSQL
type CommentRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *CommentRepository) WithTx(tx pgx.Tx) ports.CommentRepository {
	return &CommentRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new comment into the database. A foreign key
// violation on news_id is reported as ports.ErrNewsNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Insert("comments").
		Columns(
			"id", "text", "username", "news_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: comment.ID, Valid: true},
			comment.Text,
			comment.Username,
			pgtype.UUID{Bytes: comment.NewsID, Valid: true},
			pgtype.UUID{Bytes: comment.CreatedBy, Valid: true},
			nullableUUID(comment.UpdatedBy),
			pgtype.Timestamptz{Time: comment.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ports.ErrNewsNotFound
		}
		return fmt.Errorf("CommentRepository.Create: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query, args, err := r.SB.
		Select(
			"id", "text", "username", "news_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		From("comments").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrCommentNotFound
		}
		return nil, fmt.Errorf("CommentRepository.FindByID: %w", err)
	}

	return comment, nil
}

// Update updates an existing comment in the database
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Update("comments").
		Set("text", comment.Text).
		Set("updated_by", nullableUUID(comment.UpdatedBy)).
		Set("updated_at", pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: comment.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment from the database
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("comments").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrCommentNotFound
	}

	return nil
}

// FindAllByNewsID retrieves the comments of one news article, oldest first
func (r *CommentRepository) FindAllByNewsID(ctx context.Context, newsID uuid.UUID, filter ports.ListFilter) ([]*domain.Comment, error) {
	qb := r.SB.
		Select(
			"id", "text", "username", "news_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		From("comments").
		Where(sq.Eq{"news_id": pgtype.UUID{Bytes: newsID, Valid: true}}).
		OrderBy("created_at ASC")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.FindAllByNewsID: build query: %w", err)
	}

	return r.queryComments(ctx, "FindAllByNewsID", query, args)
}

// DeleteAllByNewsID removes all comments of a news article and returns
// how many were deleted
func (r *CommentRepository) DeleteAllByNewsID(ctx context.Context, newsID uuid.UUID) (int, error) {
	query, args, err := r.SB.
		Delete("comments").
		Where(sq.Eq{"news_id": pgtype.UUID{Bytes: newsID, Valid: true}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.DeleteAllByNewsID: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.DeleteAllByNewsID: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// List retrieves comments matching the filter, newest first
func (r *CommentRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Comment, error) {
	qb := r.SB.
		Select(
			"id", "text", "username", "news_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		From("comments").
		OrderBy("created_at DESC")

	qb = applyCommentFilter(qb, filter)

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.List: build query: %w", err)
	}

	return r.queryComments(ctx, "List", query, args)
}

// Count returns the total number of comments matching the filter
func (r *CommentRepository) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	qb := applyCommentFilter(r.SB.Select("COUNT(*)").From("comments"), filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.Count: build query: %w", err)
	}

	var count int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.Count: %w", err)
	}

	return count, nil
}

// Helper methods

func (r *CommentRepository) queryComments(ctx context.Context, op, query string, args []any) ([]*domain.Comment, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: %w", op, err)
	}
	defer rows.Close()

	var items []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("CommentRepository.%s: %w", op, err)
		}
		items = append(items, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: rows error: %w", op, err)
	}

	return items, nil
}

// applyCommentFilter applies common WHERE clauses to a query builder
func applyCommentFilter(qb sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if filter.SearchQuery != "" {
		qb = qb.Where(sq.ILike{"text": "%" + filter.SearchQuery + "%"})
	}
	return qb
}

// scanComment scans a single comment from pgx.Row
func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	var idBytes, newsIDBytes, createdByBytes pgtype.UUID
	var updatedByBytes pgtype.UUID

	err := row.Scan(
		&idBytes,
		&comment.Text,
		&comment.Username,
		&newsIDBytes,
		&createdByBytes,
		&updatedByBytes,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.ID = uuid.UUID(idBytes.Bytes)
	comment.NewsID = uuid.UUID(newsIDBytes.Bytes)
	comment.CreatedBy = uuid.UUID(createdByBytes.Bytes)
	if updatedByBytes.Valid {
		comment.UpdatedBy = uuid.UUID(updatedByBytes.Bytes)
	}

	return &comment, nil
}

// Compile-time check to ensure CommentRepository implements ports.CommentRepository
var _ ports.CommentRepository = (*CommentRepository)(nil)
