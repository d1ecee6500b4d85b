package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	identityports "github.com/newshub/news-service/internal/identity/ports"
	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
	"github.com/newshub/news-service/internal/platform/eventbus"
	"github.com/newshub/news-service/internal/platform/events"
	"github.com/newshub/news-service/internal/platform/logger"
	"github.com/newshub/news-service/internal/platform/postgres"
)

// NewsService orchestrates the news write paths: identity fetch, then
// authorization, then the entity write with its revision append, all in
// one transaction. A failure at any step rolls back the whole write, so
// a failed mutation never leaves an orphan revision.
type NewsService struct {
	newsRepo     ports.NewsRepository
	commentRepo  ports.CommentRepository
	revisionRepo ports.RevisionRepository
	gateway      identityports.Gateway
	authorizer   *Authorizer
	txManager    postgres.TransactionManager
	eventBus     *eventbus.Bus
	logger       logger.Logger
	sanitizer    *bluemonday.Policy
}

// NewNewsService creates a new news service
func NewNewsService(
	newsRepo ports.NewsRepository,
	commentRepo ports.CommentRepository,
	revisionRepo ports.RevisionRepository,
	gateway identityports.Gateway,
	authorizer *Authorizer,
	txManager postgres.TransactionManager,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *NewsService {
	return &NewsService{
		newsRepo:     newsRepo,
		commentRepo:  commentRepo,
		revisionRepo: revisionRepo,
		gateway:      gateway,
		authorizer:   authorizer,
		txManager:    txManager,
		eventBus:     eventBus,
		logger:       logger,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

// CreateNewsAdminParams contains parameters for the admin creation path
type CreateNewsAdminParams struct {
	Title    string
	Text     string
	AuthorID uuid.UUID
}

// CreateNewsJournalistParams contains parameters for the journalist
// creation path; authorship is always the caller
type CreateNewsJournalistParams struct {
	Title string
	Text  string
}

// UpdateNewsAdminParams contains parameters for the admin update path
type UpdateNewsAdminParams struct {
	Title    string
	Text     string
	AuthorID uuid.UUID
}

// UpdateNewsJournalistParams contains parameters for the journalist
// update path
type UpdateNewsJournalistParams struct {
	Title string
	Text  string
}

// CreateNewsAsAdmin creates a news article attributed to an arbitrary
// author. The supplied author id must resolve to a real identity.
func (s *NewsService) CreateNewsAsAdmin(ctx context.Context, params CreateNewsAdminParams, credential string) (*domain.News, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanCreateNewsAsAdmin(caller) {
		return nil, ErrAccessDenied
	}

	author, err := resolveUser(ctx, s.gateway, params.AuthorID, credential)
	if err != nil {
		return nil, err
	}

	news, err := domain.NewNews(params.Title, s.sanitizer.Sanitize(params.Text), author.ID, caller.ID)
	if err != nil {
		return nil, invalidDataErr(err)
	}

	if err := s.inTx(ctx, func(newsRepo ports.NewsRepository, _ ports.CommentRepository, revisionRepo ports.RevisionRepository) error {
		if err := newsRepo.Create(ctx, news); err != nil {
			return err
		}
		return s.appendRevision(ctx, revisionRepo, news, domain.ChangeKindInsert, caller.ID)
	}); err != nil {
		s.logger.Error(ctx, "failed to create news", "error", err, "authorID", author.ID)
		return nil, s.translateWriteError(err, news.ID)
	}

	s.publishNewsCreated(ctx, news, caller.ID)
	return news, nil
}

// CreateNewsAsJournalist creates a news article owned by the caller.
func (s *NewsService) CreateNewsAsJournalist(ctx context.Context, params CreateNewsJournalistParams, credential string) (*domain.News, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanCreateNewsAsJournalist(caller) {
		return nil, ErrAccessDenied
	}

	news, err := domain.NewNews(params.Title, s.sanitizer.Sanitize(params.Text), caller.ID, caller.ID)
	if err != nil {
		return nil, invalidDataErr(err)
	}

	if err := s.inTx(ctx, func(newsRepo ports.NewsRepository, _ ports.CommentRepository, revisionRepo ports.RevisionRepository) error {
		if err := newsRepo.Create(ctx, news); err != nil {
			return err
		}
		return s.appendRevision(ctx, revisionRepo, news, domain.ChangeKindInsert, caller.ID)
	}); err != nil {
		s.logger.Error(ctx, "failed to create news", "error", err, "authorID", caller.ID)
		return nil, s.translateWriteError(err, news.ID)
	}

	s.publishNewsCreated(ctx, news, caller.ID)
	return news, nil
}

// UpdateNewsAsAdmin updates any news article, re-validating that the
// supplied author id resolves to a real identity.
func (s *NewsService) UpdateNewsAsAdmin(ctx context.Context, id uuid.UUID, params UpdateNewsAdminParams, credential string) (*domain.News, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanCreateNewsAsAdmin(caller) {
		return nil, ErrAccessDenied
	}

	author, err := resolveUser(ctx, s.gateway, params.AuthorID, credential)
	if err != nil {
		return nil, err
	}

	var news *domain.News
	if err := s.inTx(ctx, func(newsRepo ports.NewsRepository, _ ports.CommentRepository, revisionRepo ports.RevisionRepository) error {
		news, err = newsRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := news.UpdateContent(params.Title, s.sanitizer.Sanitize(params.Text), caller.ID); err != nil {
			return invalidDataErr(err)
		}
		if err := news.Reassign(author.ID); err != nil {
			return invalidDataErr(err)
		}
		if err := newsRepo.Update(ctx, news); err != nil {
			return err
		}
		return s.appendRevision(ctx, revisionRepo, news, domain.ChangeKindUpdate, caller.ID)
	}); err != nil {
		return nil, s.translateWriteError(err, id)
	}

	s.publishNewsUpdated(ctx, news, caller.ID)
	return news, nil
}

// UpdateNewsAsJournalist updates a news article owned by the caller.
// Journalists are denied on articles they do not own.
func (s *NewsService) UpdateNewsAsJournalist(ctx context.Context, id uuid.UUID, params UpdateNewsJournalistParams, credential string) (*domain.News, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}

	var news *domain.News
	if err := s.inTx(ctx, func(newsRepo ports.NewsRepository, _ ports.CommentRepository, revisionRepo ports.RevisionRepository) error {
		news, err = newsRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !s.authorizer.CanChangeNews(caller, news) {
			return ErrAccessDenied
		}
		if err := news.UpdateContent(params.Title, s.sanitizer.Sanitize(params.Text), caller.ID); err != nil {
			return invalidDataErr(err)
		}
		if err := newsRepo.Update(ctx, news); err != nil {
			return err
		}
		return s.appendRevision(ctx, revisionRepo, news, domain.ChangeKindUpdate, caller.ID)
	}); err != nil {
		return nil, s.translateWriteError(err, id)
	}

	s.publishNewsUpdated(ctx, news, caller.ID)
	return news, nil
}

// DeleteNews removes a news article together with all of its comments.
// The comments go first, then the parent, then the delete revision, all
// in one transaction.
func (s *NewsService) DeleteNews(ctx context.Context, id uuid.UUID, credential string) error {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return err
	}

	var news *domain.News
	if err := s.inTx(ctx, func(newsRepo ports.NewsRepository, commentRepo ports.CommentRepository, revisionRepo ports.RevisionRepository) error {
		news, err = newsRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !s.authorizer.CanChangeNews(caller, news) {
			return ErrAccessDenied
		}
		if _, err := commentRepo.DeleteAllByNewsID(ctx, id); err != nil {
			return err
		}
		if err := newsRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.appendRevision(ctx, revisionRepo, news, domain.ChangeKindDelete, caller.ID)
	}); err != nil {
		return s.translateWriteError(err, id)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.NewsDeletedTopic,
		Payload: events.NewsDeletedEvent{
			NewsID:     id,
			ActorID:    caller.ID,
			OccurredAt: time.Now(),
		},
	})
	return nil
}

// GetNews retrieves a news article by ID
func (s *NewsService) GetNews(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	news, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNewsNotFound) {
			return nil, newsNotFoundErr(id)
		}
		s.logger.Error(ctx, "failed to find news", "error", err, "newsID", id)
		return nil, internalErr("failed to retrieve news")
	}
	return news, nil
}

// ListNews retrieves a page of news articles, optionally filtered by a
// substring of the title or text.
func (s *NewsService) ListNews(ctx context.Context, filter ports.ListFilter) ([]*domain.News, int, error) {
	items, err := s.newsRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list news", "error", err)
		return nil, 0, internalErr("failed to list news")
	}

	count, err := s.newsRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count news", "error", err)
		return nil, 0, internalErr("failed to count news")
	}

	return items, count, nil
}

// Private helper methods

// inTx runs fn with transaction-bound repositories and commits on
// success. The deferred rollback is a no-op after commit.
func (s *NewsService) inTx(ctx context.Context, fn func(ports.NewsRepository, ports.CommentRepository, ports.RevisionRepository) error) error {
	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(s.newsRepo.WithTx(tx.Tx()), s.commentRepo.WithTx(tx.Tx()), s.revisionRepo.WithTx(tx.Tx())); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *NewsService) appendRevision(ctx context.Context, repo ports.RevisionRepository, news *domain.News, kind domain.ChangeKind, actorID uuid.UUID) error {
	revision, err := domain.NewRevision(news, kind, actorID, time.Now())
	if err != nil {
		return err
	}
	return repo.Append(ctx, &revision)
}

// translateWriteError maps repository sentinels and pass-through
// AppErrors; anything else becomes an internal error.
func (s *NewsService) translateWriteError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, ports.ErrNewsNotFound):
		return newsNotFoundErr(id)
	case isAppError(err):
		return err
	default:
		return internalErr("failed to write news")
	}
}

func (s *NewsService) publishNewsCreated(ctx context.Context, news *domain.News, actorID uuid.UUID) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.NewsCreatedTopic,
		Payload: events.NewsCreatedEvent{
			NewsID:     news.ID,
			AuthorID:   news.AuthorID,
			ActorID:    actorID,
			Title:      news.Title,
			OccurredAt: time.Now(),
		},
	})
}

func (s *NewsService) publishNewsUpdated(ctx context.Context, news *domain.News, actorID uuid.UUID) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.NewsUpdatedTopic,
		Payload: events.NewsUpdatedEvent{
			NewsID:     news.ID,
			ActorID:    actorID,
			Title:      news.Title,
			OccurredAt: time.Now(),
		},
	})
}
