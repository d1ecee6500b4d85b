package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// News represents a news article in the domain
type News struct {
	ID        uuid.UUID
	Title     string
	Text      string
	AuthorID  uuid.UUID // The owning user for authorship checks
	CreatedBy uuid.UUID // Actor who performed the insert; set exactly once
	UpdatedBy uuid.UUID // Actor who performed the last update; zero until first update
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Business rule constants
const (
	MinTitleLength = 5
	MaxTitleLength = 100
	MinTextLength  = 5
	MaxTextLength  = 500
)

// Validation errors
var (
	ErrInvalidTitle    = errors.New("title must be between 5 and 100 characters")
	ErrInvalidText     = errors.New("text must be between 5 and 500 characters")
	ErrInvalidAuthorID = errors.New("author ID is required")
	ErrInvalidActorID  = errors.New("actor ID is required")
)

// NewNews creates a news article with validation. The author is the
// designated owner; createdBy is the actor performing the write, which
// may differ when an admin creates news on behalf of another user.
func NewNews(title, text string, authorID, createdBy uuid.UUID) (*News, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}
	if createdBy == uuid.Nil {
		return nil, ErrInvalidActorID
	}

	now := time.Now()
	return &News{
		ID:        uuid.New(),
		Title:     title,
		Text:      text,
		AuthorID:  authorID,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateContent replaces the mutable fields and stamps the acting user.
// CreatedBy and AuthorID are untouched here: authorship only changes
// through Reassign on the admin path.
func (n *News) UpdateContent(title, text string, updatedBy uuid.UUID) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateText(text); err != nil {
		return err
	}
	if updatedBy == uuid.Nil {
		return ErrInvalidActorID
	}

	n.Title = title
	n.Text = text
	n.UpdatedBy = updatedBy
	n.UpdatedAt = time.Now()
	return nil
}

// Reassign changes the owning author. Only the admin update path may
// call this; the caller must have re-validated that the new author
// resolves to a real identity.
func (n *News) Reassign(authorID uuid.UUID) error {
	if authorID == uuid.Nil {
		return ErrInvalidAuthorID
	}
	n.AuthorID = authorID
	return nil
}

// IsOwnedBy reports whether the given user is the designated author.
func (n *News) IsOwnedBy(userID uuid.UUID) bool {
	return n.AuthorID == userID
}

// Validation helpers

func validateTitle(title string) error {
	if len(title) < MinTitleLength || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateText(text string) error {
	if len(text) < MinTextLength || len(text) > MaxTextLength {
		return ErrInvalidText
	}
	return nil
}
