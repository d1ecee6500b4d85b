//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	identityclient "github.com/newshub/news-service/internal/adapters/identity"
	"github.com/newshub/news-service/internal/adapters/postgres"
	"github.com/newshub/news-service/internal/adapters/rest"
	"github.com/newshub/news-service/internal/news/application"
	"github.com/newshub/news-service/internal/platform/eventbus"
	"github.com/newshub/news-service/internal/platform/logger"
	platformpg "github.com/newshub/news-service/internal/platform/postgres"
	"github.com/newshub/news-service/internal/platform/seeder"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,

		// Main logger
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Infrastructure
		ConnectDatabase,
		ConnectRedis,
		platformpg.NewTransactionManager,
		eventbus.ProviderSet,
		provideSeeders,
		seeder.NewOrchestrator,

		// Identity gateway
		provideIdentityConfig,
		identityclient.ProviderSet,

		// Repository providers (includes interface binding)
		postgres.ProviderSet,

		// Application services
		application.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion, // Provide version string for HealthHandler

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
