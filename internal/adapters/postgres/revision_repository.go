package postgres

import (
	"context"
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

// RevisionRepository implements the ports.RevisionRepository interface
// using PostgreSQL. The news_revisions table is append-only: rows are
// never updated or deleted, so history survives entity deletion.
type RevisionRepository struct {
	postgres.BaseRepository
}

// NewRevisionRepository creates a new PostgreSQL revision repository
func NewRevisionRepository(db *pgxpool.Pool) *RevisionRepository {
	return &RevisionRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *RevisionRepository) WithTx(tx pgx.Tx) ports.RevisionRepository {
	return &RevisionRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Append adds a revision to the log. The sequence number is assigned by
// the database and written back to the revision.
func (r *RevisionRepository) Append(ctx context.Context, revision *domain.Revision) error {
	query, args, err := r.SB.
		Insert("news_revisions").
		Columns("news_id", "user_id", "kind", "snapshot", "created_at").
		Values(
			pgtype.UUID{Bytes: revision.NewsID, Valid: true},
			pgtype.UUID{Bytes: revision.UserID, Valid: true},
			string(revision.Kind),
			[]byte(revision.Snapshot),
			pgtype.Timestamptz{Time: revision.CreatedAt, Valid: true},
		).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("RevisionRepository.Append: build query: %w", err)
	}

	if err := r.DB.QueryRow(ctx, query, args...).Scan(&revision.Seq); err != nil {
		return fmt.Errorf("RevisionRepository.Append: %w", err)
	}

	return nil
}

// FindByNewsID retrieves revisions for a news id, oldest first. The
// window and pagination are applied inside the query so the page
// boundaries are computed on in-window rows.
func (r *RevisionRepository) FindByNewsID(ctx context.Context, newsID uuid.UUID, filter ports.RevisionFilter) ([]domain.Revision, error) {
	qb := r.SB.
		Select("seq", "news_id", "user_id", "kind", "snapshot", "created_at").
		From("news_revisions").
		OrderBy("seq ASC")

	qb = applyRevisionFilter(qb, newsID, filter)

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("RevisionRepository.FindByNewsID: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("RevisionRepository.FindByNewsID: %w", err)
	}
	defer rows.Close()

	var revisions []domain.Revision
	for rows.Next() {
		revision, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("RevisionRepository.FindByNewsID: %w", err)
		}
		revisions = append(revisions, revision)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RevisionRepository.FindByNewsID: rows error: %w", err)
	}

	return revisions, nil
}

// CountByNewsID returns the number of revisions matching the filter
func (r *RevisionRepository) CountByNewsID(ctx context.Context, newsID uuid.UUID, filter ports.RevisionFilter) (int, error) {
	qb := applyRevisionFilter(r.SB.Select("COUNT(*)").From("news_revisions"), newsID, filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("RevisionRepository.CountByNewsID: build query: %w", err)
	}

	var count int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("RevisionRepository.CountByNewsID: %w", err)
	}

	return count, nil
}

// ExistsForNews reports whether the news id has ever produced a revision
func (r *RevisionRepository) ExistsForNews(ctx context.Context, newsID uuid.UUID) (bool, error) {
	subQuery, subArgs, err := r.SB.
		Select("1").
		From("news_revisions").
		Where(sq.Eq{"news_id": pgtype.UUID{Bytes: newsID, Valid: true}}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("RevisionRepository.ExistsForNews: build query: %w", err)
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuery)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("RevisionRepository.ExistsForNews: %w", err)
	}

	return exists, nil
}

// Helper methods

// applyRevisionFilter scopes the query to one news id and, when a
// window is set, to revisions strictly inside it. Both bounds are
// exclusive.
func applyRevisionFilter(qb sq.SelectBuilder, newsID uuid.UUID, filter ports.RevisionFilter) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{"news_id": pgtype.UUID{Bytes: newsID, Valid: true}})

	if filter.Window != nil {
		qb = qb.Where(sq.Gt{"created_at": pgtype.Timestamptz{Time: filter.Window.Start, Valid: true}})
		qb = qb.Where(sq.Lt{"created_at": pgtype.Timestamptz{Time: filter.Window.End, Valid: true}})
	}

	return qb
}

// scanRevision scans a single revision from pgx.Row
func scanRevision(row pgx.Row) (domain.Revision, error) {
	var revision domain.Revision
	var newsIDBytes, userIDBytes pgtype.UUID
	var kindStr string
	var snapshot []byte

	err := row.Scan(
		&revision.Seq,
		&newsIDBytes,
		&userIDBytes,
		&kindStr,
		&snapshot,
		&revision.CreatedAt,
	)
	if err != nil {
		return domain.Revision{}, err
	}

	revision.NewsID = uuid.UUID(newsIDBytes.Bytes)
	revision.UserID = uuid.UUID(userIDBytes.Bytes)
	revision.Kind = domain.ChangeKind(kindStr)
	revision.Snapshot = snapshot

	return revision, nil
}

// Compile-time check to ensure RevisionRepository implements ports.RevisionRepository
var _ ports.RevisionRepository = (*RevisionRepository)(nil)
