package server

import (
	"net/http"
	"time"

	"github.com/newshub/news-service/internal/adapters/rest"
)

// NewHTTPServer creates the HTTP server around the assembled route tree
func NewHTTPServer(config Config, router *rest.Router) *http.Server {
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
