package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
	"github.com/newshub/news-service/internal/platform/postgres"
)

// NewsRepository implements the ports.NewsRepository interface using PostgreSQL
type NewsRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewNewsRepository creates a new PostgreSQL news repository
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *NewsRepository) WithTx(tx pgx.Tx) ports.NewsRepository {
	return &NewsRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new news article into the database
func (r *NewsRepository) Create(ctx context.Context, news *domain.News) error {
	query, args, err := r.SB.
		Insert("news").
		Columns(
			"id", "title", "text", "author_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: news.ID, Valid: true},
			news.Title,
			news.Text,
			pgtype.UUID{Bytes: news.AuthorID, Valid: true},
			pgtype.UUID{Bytes: news.CreatedBy, Valid: true},
			nullableUUID(news.UpdatedBy),
			pgtype.Timestamptz{Time: news.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: news.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("NewsRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("NewsRepository.Create: %w", err)
	}

	return nil
}

// FindByID retrieves a news article by its ID
func (r *NewsRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	query, args, err := r.SB.
		Select(
			"id", "title", "text", "author_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		From("news").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("NewsRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	news, err := scanNews(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNewsNotFound
		}
		return nil, fmt.Errorf("NewsRepository.FindByID: %w", err)
	}

	return news, nil
}

// Update updates an existing news article in the database
func (r *NewsRepository) Update(ctx context.Context, news *domain.News) error {
	query, args, err := r.SB.
		Update("news").
		Set("title", news.Title).
		Set("text", news.Text).
		Set("author_id", pgtype.UUID{Bytes: news.AuthorID, Valid: true}).
		Set("updated_by", nullableUUID(news.UpdatedBy)).
		Set("updated_at", pgtype.Timestamptz{Time: news.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: news.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("NewsRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("NewsRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNewsNotFound
	}

	return nil
}

// Delete removes a news article from the database
func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("news").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("NewsRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("NewsRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNewsNotFound
	}

	return nil
}

// List retrieves news articles matching the filter, newest first
func (r *NewsRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.News, error) {
	qb := r.SB.
		Select(
			"id", "title", "text", "author_id",
			"created_by", "updated_by", "created_at", "updated_at",
		).
		From("news").
		OrderBy("created_at DESC")

	qb = applyNewsFilter(qb, filter)

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("NewsRepository.List: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("NewsRepository.List: %w", err)
	}
	defer rows.Close()

	var items []*domain.News
	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("NewsRepository.List: %w", err)
		}
		items = append(items, news)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("NewsRepository.List: rows error: %w", err)
	}

	return items, nil
}

// Count returns the total number of news articles matching the filter
func (r *NewsRepository) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	qb := applyNewsFilter(r.SB.Select("COUNT(*)").From("news"), filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("NewsRepository.Count: build query: %w", err)
	}

	var count int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("NewsRepository.Count: %w", err)
	}

	return count, nil
}

// Helper methods

// applyNewsFilter applies common WHERE clauses to a query builder
func applyNewsFilter(qb sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if filter.SearchQuery != "" {
		searchPattern := "%" + filter.SearchQuery + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": searchPattern},
			sq.ILike{"text": searchPattern},
		})
	}
	return qb
}

// nullableUUID maps uuid.Nil to a SQL NULL
func nullableUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

// scanNews scans a single news article from pgx.Row
func scanNews(row pgx.Row) (*domain.News, error) {
	var news domain.News
	var idBytes, authorIDBytes, createdByBytes pgtype.UUID
	var updatedByBytes pgtype.UUID

	err := row.Scan(
		&idBytes,
		&news.Title,
		&news.Text,
		&authorIDBytes,
		&createdByBytes,
		&updatedByBytes,
		&news.CreatedAt,
		&news.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	news.ID = uuid.UUID(idBytes.Bytes)
	news.AuthorID = uuid.UUID(authorIDBytes.Bytes)
	news.CreatedBy = uuid.UUID(createdByBytes.Bytes)
	if updatedByBytes.Valid {
		news.UpdatedBy = uuid.UUID(updatedByBytes.Bytes)
	}

	return &news, nil
}

// Compile-time check to ensure NewsRepository implements ports.NewsRepository
var _ ports.NewsRepository = (*NewsRepository)(nil)
