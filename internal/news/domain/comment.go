package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment belongs exclusively to one News item; deleting the news
// deletes its comments. Username is a snapshot of the author's display
// name taken at creation time and is never re-synced afterwards.
type Comment struct {
	ID        uuid.UUID
	Text      string
	Username  string
	NewsID    uuid.UUID
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	MinCommentLength  = 3
	MaxCommentLength  = 500
	MaxUsernameLength = 40
)

var (
	ErrInvalidCommentText = errors.New("comment text must be between 3 and 500 characters")
	ErrInvalidNewsID      = errors.New("news ID is required")
	ErrInvalidUsername    = errors.New("username is required and must not exceed 40 characters")
)

// NewComment creates a comment with validation. createdBy identifies the
// actor who may later be authorized to modify or delete it.
func NewComment(text, username string, newsID, createdBy uuid.UUID) (*Comment, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}
	if username == "" || len(username) > MaxUsernameLength {
		return nil, ErrInvalidUsername
	}
	if newsID == uuid.Nil {
		return nil, ErrInvalidNewsID
	}
	if createdBy == uuid.Nil {
		return nil, ErrInvalidActorID
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		Text:      text,
		Username:  username,
		NewsID:    newsID,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateText replaces the comment text and stamps the acting user.
func (c *Comment) UpdateText(text string, updatedBy uuid.UUID) error {
	if err := validateCommentText(text); err != nil {
		return err
	}
	if updatedBy == uuid.Nil {
		return ErrInvalidActorID
	}

	c.Text = text
	c.UpdatedBy = updatedBy
	c.UpdatedAt = time.Now()
	return nil
}

// IsCreatedBy reports whether the given user created the comment.
func (c *Comment) IsCreatedBy(userID uuid.UUID) bool {
	return c.CreatedBy == userID
}

func validateCommentText(text string) error {
	if len(text) < MinCommentLength || len(text) > MaxCommentLength {
		return ErrInvalidCommentText
	}
	return nil
}
