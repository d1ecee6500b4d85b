package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/newshub/news-service/internal/platform/eventbus"
)

// Event topics for comments
const (
	CommentCreatedTopic eventbus.Topic = "comments.created"
	CommentUpdatedTopic eventbus.Topic = "comments.updated"
	CommentDeletedTopic eventbus.Topic = "comments.deleted"
)

// CommentCreatedEvent is published when a comment is created
type CommentCreatedEvent struct {
	CommentID  uuid.UUID
	NewsID     uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// CommentUpdatedEvent is published when a comment is updated
type CommentUpdatedEvent struct {
	CommentID  uuid.UUID
	NewsID     uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// CommentDeletedEvent is published when a comment is deleted
type CommentDeletedEvent struct {
	CommentID  uuid.UUID
	NewsID     uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}
