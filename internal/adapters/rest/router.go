package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/newshub/news-service/internal/adapters/rest/middleware"
	"github.com/newshub/news-service/internal/platform/logger"
)

// Router bundles the handlers into the service's route tree.
type Router struct {
	news    *NewsHandler
	comment *CommentHandler
	history *HistoryHandler
	health  *HealthHandler
	logger  logger.Logger
}

// NewRouter creates the route tree container
func NewRouter(
	news *NewsHandler,
	comment *CommentHandler,
	history *HistoryHandler,
	health *HealthHandler,
	logger logger.Logger,
) *Router {
	return &Router{
		news:    news,
		comment: comment,
		history: history,
		health:  health,
		logger:  logger,
	}
}

// Handler builds the chi handler with all routes and middleware.
// Authorization is not a routing concern here: every protected
// operation resolves and checks the caller in the application layer, so
// the router only has to make the credential available.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(rt.logger))
	r.Use(middleware.Credential)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/news", func(r chi.Router) {
			r.Get("/", rt.news.ListNews)
			r.Get("/filter", rt.news.ListNewsByFilter)
			r.Get("/{id}", rt.news.GetNews)
			r.Post("/admin", rt.news.CreateNewsAsAdmin)
			r.Post("/journalist", rt.news.CreateNewsAsJournalist)
			r.Put("/admin/{id}", rt.news.UpdateNewsAsAdmin)
			r.Put("/journalist/{id}", rt.news.UpdateNewsAsJournalist)
			r.Delete("/{id}", rt.news.DeleteNews)
		})

		r.Route("/comment", func(r chi.Router) {
			r.Get("/", rt.comment.ListComments)
			r.Get("/filter", rt.comment.ListCommentsByFilter)
			r.Get("/news/{newsId}", rt.comment.GetNewsWithComments)
			r.Get("/{id}", rt.comment.GetComment)
			r.Post("/", rt.comment.CreateComment)
			r.Put("/{id}", rt.comment.UpdateComment)
			r.Delete("/{id}", rt.comment.DeleteComment)
		})

		r.Route("/history/news", func(r chi.Router) {
			r.Get("/period/{newsId}", rt.history.GetHistoryForPeriod)
			r.Get("/{newsId}", rt.history.GetHistory)
		})

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", rt.health.GetLiveness)
			r.Get("/ready", rt.health.GetReadiness)
		})
	})

	return r
}
