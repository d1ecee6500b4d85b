package server

import (
	identityclient "github.com/newshub/news-service/internal/adapters/identity"
	"github.com/newshub/news-service/internal/adapters/postgres"
	"github.com/newshub/news-service/internal/platform/logger"
	"github.com/newshub/news-service/internal/platform/seeder"
)

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideSeeders lists the seeders run at startup, in order
func provideSeeders() []seeder.Seeder {
	return []seeder.Seeder{
		postgres.NewSchemaSeeder(),
	}
}

// provideIdentityConfig creates the user service client config
func provideIdentityConfig(config Config) identityclient.Config {
	return identityclient.Config{
		BaseURL: config.UserServiceURL,
		Timeout: config.IdentityTimeout,
	}
}
