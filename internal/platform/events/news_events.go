package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/newshub/news-service/internal/platform/eventbus"
)

// Event topics for news
const (
	NewsCreatedTopic eventbus.Topic = "news.created"
	NewsUpdatedTopic eventbus.Topic = "news.updated"
	NewsDeletedTopic eventbus.Topic = "news.deleted"
)

// NewsCreatedEvent is published when a news item is created
type NewsCreatedEvent struct {
	NewsID     uuid.UUID
	AuthorID   uuid.UUID
	ActorID    uuid.UUID // User who performed the write (may differ from the author for admin-created news)
	Title      string
	OccurredAt time.Time
}

// NewsUpdatedEvent is published when a news item is updated
type NewsUpdatedEvent struct {
	NewsID     uuid.UUID
	ActorID    uuid.UUID
	Title      string
	OccurredAt time.Time
}

// NewsDeletedEvent is published when a news item is deleted
// together with all of its comments
type NewsDeletedEvent struct {
	NewsID     uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}
