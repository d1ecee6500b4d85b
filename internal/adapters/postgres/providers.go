package postgres

import (
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newshub/news-service/internal/news/ports"
)

// ProvideNewsRepository provides the news repository as its port interface
func ProvideNewsRepository(db *pgxpool.Pool) ports.NewsRepository {
	return NewNewsRepository(db)
}

// ProvideCommentRepository provides the comment repository as its port interface
func ProvideCommentRepository(db *pgxpool.Pool) ports.CommentRepository {
	return NewCommentRepository(db)
}

// ProvideRevisionRepository provides the revision repository as its port interface
func ProvideRevisionRepository(db *pgxpool.Pool) ports.RevisionRepository {
	return NewRevisionRepository(db)
}

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	ProvideNewsRepository,
	ProvideCommentRepository,
	ProvideRevisionRepository,
)
