package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
	"github.com/newshub/news-service/internal/platform/logger"
)

// HistoryEntry is one rendered line of a news article's change history.
type HistoryEntry struct {
	Seq       int64
	CreatedAt time.Time
	Message   string
}

// HistoryService renders the revision log of a news article into
// human-readable history lines. Reading history never modifies the log,
// so repeated queries over the same window return the same result.
type HistoryService struct {
	revisionRepo ports.RevisionRepository
	logger       logger.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(revisionRepo ports.RevisionRepository, logger logger.Logger) *HistoryService {
	return &HistoryService{revisionRepo: revisionRepo, logger: logger}
}

// HistoryForAllTime returns the full history of a news article, oldest
// first. The article qualifies if it exists now or has ever existed;
// a deleted article still has history.
func (s *HistoryService) HistoryForAllTime(ctx context.Context, newsID uuid.UUID, limit, offset int) ([]HistoryEntry, int, error) {
	return s.history(ctx, newsID, ports.RevisionFilter{Limit: limit, Offset: offset})
}

// HistoryForPeriod returns the history of a news article within an open
// time interval: only revisions strictly after start and strictly before
// end are included. The period is validated before anything is fetched,
// so an inverted or empty period fails the same way whether or not the
// article exists.
func (s *HistoryService) HistoryForPeriod(ctx context.Context, newsID uuid.UUID, start, end time.Time, limit, offset int) ([]HistoryEntry, int, error) {
	if !start.Before(end) {
		return nil, 0, ErrInvalidTimePeriod
	}

	return s.history(ctx, newsID, ports.RevisionFilter{
		Window: &ports.TimeWindow{Start: start, End: end},
		Limit:  limit,
		Offset: offset,
	})
}

func (s *HistoryService) history(ctx context.Context, newsID uuid.UUID, filter ports.RevisionFilter) ([]HistoryEntry, int, error) {
	exists, err := s.revisionRepo.ExistsForNews(ctx, newsID)
	if err != nil {
		s.logger.Error(ctx, "failed to check revision log", "error", err, "newsID", newsID)
		return nil, 0, internalErr("failed to read history")
	}
	if !exists {
		return nil, 0, newsNotFoundErr(newsID)
	}

	revisions, err := s.revisionRepo.FindByNewsID(ctx, newsID, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to read revisions", "error", err, "newsID", newsID)
		return nil, 0, internalErr("failed to read history")
	}

	count, err := s.revisionRepo.CountByNewsID(ctx, newsID, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count revisions", "error", err, "newsID", newsID)
		return nil, 0, internalErr("failed to read history")
	}

	entries := make([]HistoryEntry, 0, len(revisions))
	for _, rev := range revisions {
		verb, ok := rev.Kind.Verb()
		if !ok {
			// A revision written by a future schema version; skip it
			// rather than fail the whole page.
			s.logger.Warn(ctx, "skipping revision of unknown kind", "kind", string(rev.Kind), "newsID", newsID, "seq", rev.Seq)
			continue
		}
		entries = append(entries, HistoryEntry{
			Seq:       rev.Seq,
			CreatedAt: rev.CreatedAt,
			Message:   renderHistoryMessage(verb, rev),
		})
	}
	return entries, count, nil
}

func renderHistoryMessage(verb string, rev domain.Revision) string {
	return "The news has been " + verb + ": " + string(rev.Snapshot)
}
