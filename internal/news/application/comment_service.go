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
)

// CommentService orchestrates comment reads and writes. Comments carry a
// username snapshot taken from the author's identity at creation time;
// the snapshot is never refreshed when the identity changes later.
type CommentService struct {
	commentRepo ports.CommentRepository
	newsRepo    ports.NewsRepository
	gateway     identityports.Gateway
	authorizer  *Authorizer
	cache       *CommentCache
	eventBus    *eventbus.Bus
	logger      logger.Logger
	sanitizer   *bluemonday.Policy
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo ports.CommentRepository,
	newsRepo ports.NewsRepository,
	gateway identityports.Gateway,
	authorizer *Authorizer,
	cache *CommentCache,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
		gateway:     gateway,
		authorizer:  authorizer,
		cache:       cache,
		eventBus:    eventBus,
		logger:      logger,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

// CreateCommentParams contains parameters for comment creation
type CreateCommentParams struct {
	Text   string
	NewsID uuid.UUID
}

// CreateComment creates a comment on an existing news article. The
// comment is stamped with the caller's display name; a dangling news id
// surfaces as news-not-found, not as a storage error.
func (s *CommentService) CreateComment(ctx context.Context, params CreateCommentParams, credential string) (*domain.Comment, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanCreateComment(caller) {
		return nil, ErrAccessDenied
	}

	comment, err := domain.NewComment(s.sanitizer.Sanitize(params.Text), caller.DisplayName(), params.NewsID, caller.ID)
	if err != nil {
		return nil, invalidDataErr(err)
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, ports.ErrNewsNotFound) {
			return nil, newsNotFoundErr(params.NewsID)
		}
		s.logger.Error(ctx, "failed to create comment", "error", err, "newsID", params.NewsID)
		return nil, internalErr("failed to create comment")
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentCreatedTopic,
		Payload: events.CommentCreatedEvent{
			CommentID:  comment.ID,
			NewsID:     comment.NewsID,
			ActorID:    caller.ID,
			OccurredAt: time.Now(),
		},
	})
	return comment, nil
}

// UpdateComment replaces the text of a comment the caller may change.
func (s *CommentService) UpdateComment(ctx context.Context, id uuid.UUID, text string, credential string) (*domain.Comment, error) {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanChangeComment(caller, comment) {
		return nil, ErrAccessDenied
	}

	if err := comment.UpdateText(s.sanitizer.Sanitize(text), caller.ID); err != nil {
		return nil, invalidDataErr(err)
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, commentNotFoundErr(id)
		}
		s.logger.Error(ctx, "failed to update comment", "error", err, "commentID", id)
		return nil, internalErr("failed to update comment")
	}

	s.cache.Invalidate(ctx, id)
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentUpdatedTopic,
		Payload: events.CommentUpdatedEvent{
			CommentID:  comment.ID,
			NewsID:     comment.NewsID,
			ActorID:    caller.ID,
			OccurredAt: time.Now(),
		},
	})
	return comment, nil
}

// DeleteComment removes a comment the caller may change.
func (s *CommentService) DeleteComment(ctx context.Context, id uuid.UUID, credential string) error {
	caller, err := resolveCaller(ctx, s.gateway, credential)
	if err != nil {
		return err
	}

	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if !s.authorizer.CanChangeComment(caller, comment) {
		return ErrAccessDenied
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return commentNotFoundErr(id)
		}
		s.logger.Error(ctx, "failed to delete comment", "error", err, "commentID", id)
		return internalErr("failed to delete comment")
	}

	s.cache.Invalidate(ctx, id)
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentDeletedTopic,
		Payload: events.CommentDeletedEvent{
			CommentID:  comment.ID,
			NewsID:     comment.NewsID,
			ActorID:    caller.ID,
			OccurredAt: time.Now(),
		},
	})
	return nil
}

// GetComment retrieves a single comment, serving from the cache when a
// fresh copy is available.
func (s *CommentService) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, comment)
	return comment, nil
}

// NewsWithComments pairs a news article with one page of its comments.
type NewsWithComments struct {
	News     *domain.News
	Comments []*domain.Comment
}

// GetNewsWithComments retrieves a news article together with a page of
// its comments, oldest comment first.
func (s *CommentService) GetNewsWithComments(ctx context.Context, newsID uuid.UUID, filter ports.ListFilter) (*NewsWithComments, error) {
	news, err := s.newsRepo.FindByID(ctx, newsID)
	if err != nil {
		if errors.Is(err, ports.ErrNewsNotFound) {
			return nil, newsNotFoundErr(newsID)
		}
		s.logger.Error(ctx, "failed to find news", "error", err, "newsID", newsID)
		return nil, internalErr("failed to retrieve news")
	}

	comments, err := s.commentRepo.FindAllByNewsID(ctx, newsID, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list comments for news", "error", err, "newsID", newsID)
		return nil, internalErr("failed to list comments")
	}

	return &NewsWithComments{News: news, Comments: comments}, nil
}

// ListComments retrieves a page of comments, optionally filtered by a
// substring of the text.
func (s *CommentService) ListComments(ctx context.Context, filter ports.ListFilter) ([]*domain.Comment, int, error) {
	items, err := s.commentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list comments", "error", err)
		return nil, 0, internalErr("failed to list comments")
	}

	count, err := s.commentRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count comments", "error", err)
		return nil, 0, internalErr("failed to count comments")
	}

	return items, count, nil
}

func (s *CommentService) findComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, commentNotFoundErr(id)
		}
		s.logger.Error(ctx, "failed to find comment", "error", err, "commentID", id)
		return nil, internalErr("failed to retrieve comment")
	}
	return comment, nil
}
