package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements is the full schema of the service, written so that
// re-running it is a no-op. The comments FK is load-bearing: creating a
// comment against a vanished article must fail with a foreign key
// violation, which the repository translates to a not-found.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS news (
		id         UUID PRIMARY KEY,
		title      VARCHAR(100) NOT NULL,
		text       VARCHAR(500) NOT NULL,
		author_id  UUID NOT NULL,
		created_by UUID NOT NULL,
		updated_by UUID,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         UUID PRIMARY KEY,
		text       VARCHAR(500) NOT NULL,
		username   VARCHAR(200) NOT NULL,
		news_id    UUID NOT NULL REFERENCES news (id),
		created_by UUID NOT NULL,
		updated_by UUID,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_news_id ON comments (news_id)`,
	`CREATE TABLE IF NOT EXISTS news_revisions (
		seq        BIGSERIAL PRIMARY KEY,
		news_id    UUID NOT NULL,
		user_id    UUID NOT NULL,
		kind       VARCHAR(20) NOT NULL,
		snapshot   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_news_revisions_news_id ON news_revisions (news_id, seq)`,
}

// SchemaSeeder creates the service tables at startup
type SchemaSeeder struct{}

// NewSchemaSeeder creates a schema seeder
func NewSchemaSeeder() *SchemaSeeder {
	return &SchemaSeeder{}
}

// Name returns the name of this seeder
func (s *SchemaSeeder) Name() string {
	return "SchemaSeeder"
}

// Seed applies the schema inside a single transaction
func (s *SchemaSeeder) Seed(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
