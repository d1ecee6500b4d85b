package application

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	identity "github.com/newshub/news-service/internal/identity/domain"
	identityports "github.com/newshub/news-service/internal/identity/ports"
	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/news/ports"
	"github.com/newshub/news-service/internal/platform/eventbus"
	"github.com/newshub/news-service/internal/platform/logger"
	"github.com/newshub/news-service/internal/platform/postgres"
)

// In-memory fakes for the persistence and identity ports. They emulate
// the behavior the real adapters promise: sentinel errors for missing
// rows, the dangling-news check on comment creation, and exclusive
// window bounds on the revision log.

type memNewsRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.News

	failCreate error
}

func newMemNewsRepo() *memNewsRepo {
	return &memNewsRepo{rows: make(map[uuid.UUID]domain.News)}
}

func (r *memNewsRepo) WithTx(pgx.Tx) ports.NewsRepository { return r }

func (r *memNewsRepo) Create(_ context.Context, news *domain.News) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[news.ID] = *news
	return nil
}

func (r *memNewsRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ports.ErrNewsNotFound
	}
	copied := row
	return &copied, nil
}

func (r *memNewsRepo) Update(_ context.Context, news *domain.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[news.ID]; !ok {
		return ports.ErrNewsNotFound
	}
	r.rows[news.ID] = *news
	return nil
}

func (r *memNewsRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ports.ErrNewsNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memNewsRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.News
	for _, row := range r.rows {
		if matchesNews(row, filter.SearchQuery) {
			copied := row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *memNewsRepo) Count(_ context.Context, filter ports.ListFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if matchesNews(row, filter.SearchQuery) {
			count++
		}
	}
	return count, nil
}

func matchesNews(row domain.News, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(row.Title, query) || strings.Contains(row.Text, query)
}

type memCommentRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Comment

	// newsExists is consulted on Create to emulate the foreign key.
	newsExists func(id uuid.UUID) bool
}

func newMemCommentRepo(news *memNewsRepo) *memCommentRepo {
	return &memCommentRepo{
		rows: make(map[uuid.UUID]domain.Comment),
		newsExists: func(id uuid.UUID) bool {
			news.mu.Lock()
			defer news.mu.Unlock()
			_, ok := news.rows[id]
			return ok
		},
	}
}

func (r *memCommentRepo) WithTx(pgx.Tx) ports.CommentRepository { return r }

func (r *memCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	if !r.newsExists(comment.NewsID) {
		return ports.ErrNewsNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[comment.ID] = *comment
	return nil
}

func (r *memCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ports.ErrCommentNotFound
	}
	copied := row
	return &copied, nil
}

func (r *memCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[comment.ID]; !ok {
		return ports.ErrCommentNotFound
	}
	r.rows[comment.ID] = *comment
	return nil
}

func (r *memCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ports.ErrCommentNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memCommentRepo) FindAllByNewsID(_ context.Context, newsID uuid.UUID, filter ports.ListFilter) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, row := range r.rows {
		if row.NewsID == newsID {
			copied := row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *memCommentRepo) DeleteAllByNewsID(_ context.Context, newsID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for id, row := range r.rows {
		if row.NewsID == newsID {
			delete(r.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memCommentRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, row := range r.rows {
		if filter.SearchQuery == "" || strings.Contains(row.Text, filter.SearchQuery) {
			copied := row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *memCommentRepo) Count(_ context.Context, filter ports.ListFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if filter.SearchQuery == "" || strings.Contains(row.Text, filter.SearchQuery) {
			count++
		}
	}
	return count, nil
}

type memRevisionRepo struct {
	mu   sync.Mutex
	rows []domain.Revision
	seq  int64

	failAppend error
}

func newMemRevisionRepo() *memRevisionRepo {
	return &memRevisionRepo{}
}

func (r *memRevisionRepo) WithTx(pgx.Tx) ports.RevisionRepository { return r }

func (r *memRevisionRepo) Append(_ context.Context, revision *domain.Revision) error {
	if r.failAppend != nil {
		return r.failAppend
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	revision.Seq = r.seq
	r.rows = append(r.rows, *revision)
	return nil
}

func (r *memRevisionRepo) FindByNewsID(_ context.Context, newsID uuid.UUID, filter ports.RevisionFilter) ([]domain.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Revision
	for _, row := range r.rows {
		if row.NewsID == newsID && inWindow(row, filter.Window) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *memRevisionRepo) CountByNewsID(_ context.Context, newsID uuid.UUID, filter ports.RevisionFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if row.NewsID == newsID && inWindow(row, filter.Window) {
			count++
		}
	}
	return count, nil
}

func (r *memRevisionRepo) ExistsForNews(_ context.Context, newsID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.NewsID == newsID {
			return true, nil
		}
	}
	return false, nil
}

func inWindow(rev domain.Revision, window *ports.TimeWindow) bool {
	if window == nil {
		return true
	}
	return rev.CreatedAt.After(window.Start) && rev.CreatedAt.Before(window.End)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// stubGateway resolves credentials and user ids from fixed maps.
type stubGateway struct {
	callers map[string]identity.Identity
	users   map[uuid.UUID]identity.Identity

	callerErr error
	userErr   error
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		callers: make(map[string]identity.Identity),
		users:   make(map[uuid.UUID]identity.Identity),
	}
}

func (g *stubGateway) addIdentity(credential string, id identity.Identity) {
	g.callers[credential] = id
	g.users[id.ID] = id
}

func (g *stubGateway) ResolveCaller(_ context.Context, credential string) (identity.Identity, error) {
	if g.callerErr != nil {
		return identity.Identity{}, g.callerErr
	}
	caller, ok := g.callers[credential]
	if !ok {
		return identity.Identity{}, identityports.ErrIdentityNotFound
	}
	return caller, nil
}

func (g *stubGateway) ResolveUser(_ context.Context, userID uuid.UUID, _ string) (identity.Identity, error) {
	if g.userErr != nil {
		return identity.Identity{}, g.userErr
	}
	user, ok := g.users[userID]
	if !ok {
		return identity.Identity{}, identityports.ErrIdentityNotFound
	}
	return user, nil
}

// fakeTxManager satisfies the transaction ports without a database. The
// in-memory repositories ignore the (nil) pgx.Tx handed to WithTx.
type fakeTxManager struct {
	beginErr error
	commits  int
}

func (m *fakeTxManager) BeginTx(context.Context) (postgres.Transaction, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return &fakeTx{manager: m}, nil
}

type fakeTx struct {
	manager *fakeTxManager
}

func (t *fakeTx) Commit(context.Context) error {
	t.manager.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error { return nil }

func (t *fakeTx) Tx() pgx.Tx { return nil }

func newsListAll() ports.ListFilter {
	return ports.ListFilter{Limit: 100}
}

func listWithQuery(query string) ports.ListFilter {
	return ports.ListFilter{SearchQuery: query, Limit: 100}
}

func revisionAll() ports.RevisionFilter {
	return ports.RevisionFilter{Limit: 100}
}

type serviceFixture struct {
	newsRepo     *memNewsRepo
	commentRepo  *memCommentRepo
	revisionRepo *memRevisionRepo
	gateway      *stubGateway
	txManager    *fakeTxManager

	news     *NewsService
	comments *CommentService
	history  *HistoryService
}

func newServiceFixture() *serviceFixture {
	log := logger.NewBootstrapLogger()
	bus := eventbus.NewBus(log)
	authorizer := NewAuthorizer()

	newsRepo := newMemNewsRepo()
	commentRepo := newMemCommentRepo(newsRepo)
	revisionRepo := newMemRevisionRepo()
	gateway := newStubGateway()
	txManager := &fakeTxManager{}

	return &serviceFixture{
		newsRepo:     newsRepo,
		commentRepo:  commentRepo,
		revisionRepo: revisionRepo,
		gateway:      gateway,
		txManager:    txManager,
		news:         NewNewsService(newsRepo, commentRepo, revisionRepo, gateway, authorizer, txManager, bus, log),
		comments:     NewCommentService(commentRepo, newsRepo, gateway, authorizer, NewCommentCache(nil, log), bus, log),
		history:      NewHistoryService(revisionRepo, log),
	}
}
