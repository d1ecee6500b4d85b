package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChangeKind classifies what a revision recorded.
type ChangeKind string

const (
	ChangeKindInsert ChangeKind = "INSERT"
	ChangeKindUpdate ChangeKind = "UPDATE"
	ChangeKindDelete ChangeKind = "DELETE"
)

// Verb returns the human-readable past-tense verb for history messages.
// The second return value is false for unknown kinds; those revisions
// produce no history line.
func (k ChangeKind) Verb() (string, bool) {
	switch k {
	case ChangeKindInsert:
		return "created", true
	case ChangeKindUpdate:
		return "changed", true
	case ChangeKindDelete:
		return "deleted", true
	default:
		return "", false
	}
}

// Revision is an immutable, append-only audit record of one change to a
// news article. Revisions are created in the same transaction as the
// entity write and are never mutated or deleted.
type Revision struct {
	Seq       int64 // Monotonically increasing per news id; assigned by the store
	NewsID    uuid.UUID
	UserID    uuid.UUID // Actor who caused the change
	Kind      ChangeKind
	Snapshot  json.RawMessage // Entity field values after the change
	CreatedAt time.Time
}

// newsSnapshot is the persisted shape of a news revision snapshot.
type newsSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	AuthorID  uuid.UUID `json:"idAuthor"`
	CreatedBy uuid.UUID `json:"createdBy"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
}

// NewRevision captures the state of a news article after a change.
func NewRevision(news *News, kind ChangeKind, actorID uuid.UUID, at time.Time) (Revision, error) {
	if news == nil {
		return Revision{}, fmt.Errorf("revision: news is nil")
	}
	if actorID == uuid.Nil {
		return Revision{}, ErrInvalidActorID
	}

	snapshot, err := json.Marshal(newsSnapshot{
		ID:        news.ID,
		Title:     news.Title,
		Text:      news.Text,
		AuthorID:  news.AuthorID,
		CreatedBy: news.CreatedBy,
		UpdatedBy: news.UpdatedBy,
	})
	if err != nil {
		return Revision{}, fmt.Errorf("revision: marshal snapshot: %w", err)
	}

	return Revision{
		NewsID:    news.ID,
		UserID:    actorID,
		Kind:      kind,
		Snapshot:  snapshot,
		CreatedAt: at,
	}, nil
}
