package seeder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newshub/news-service/internal/platform/logger"
)

// Seeder prepares database state at startup. Implementations must be
// idempotent: the orchestrator runs them on every boot.
type Seeder interface {
	// Name returns the name of the seeder for logging
	Name() string

	// Seed runs the seeding logic with database access
	Seed(ctx context.Context, db *pgxpool.Pool) error
}

// Orchestrator runs the registered seeders in order before the server
// starts accepting traffic.
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
	db      *pgxpool.Pool
}

// NewOrchestrator creates a seeder orchestrator with all seeders injected
func NewOrchestrator(logger logger.Logger, db *pgxpool.Pool, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
		db:      db,
	}
}

// RunAll executes all registered seeders in order. The first failure
// aborts the run; a partially prepared schema is not safe to serve on.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	o.logger.Info(ctx, "preparing database state", "seeder_count", len(o.seeders))

	for _, s := range o.seeders {
		o.logger.Info(ctx, "running seeder", "seeder", s.Name())

		if err := s.Seed(ctx, o.db); err != nil {
			o.logger.Error(ctx, "seeder failed",
				"seeder", s.Name(),
				"error", err,
			)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}

		o.logger.Info(ctx, "seeder completed", "seeder", s.Name())
	}

	return nil
}
