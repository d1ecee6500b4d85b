package application

import (
	identity "github.com/newshub/news-service/internal/identity/domain"
	"github.com/newshub/news-service/internal/news/domain"
)

// Authorizer holds the role/ownership decision table for mutating
// actions. It is pure decision logic: callers load the target entity
// and the actor's identity, the authorizer only decides.
type Authorizer struct{}

// NewAuthorizer creates the authorization evaluator.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// CanCreateNewsAsAdmin allows the admin creation path, where the
// author may be any user that resolves to a real identity.
func (a *Authorizer) CanCreateNewsAsAdmin(actor identity.Identity) bool {
	return actor.IsAdmin()
}

// CanCreateNewsAsJournalist allows the journalist creation path, where
// authorship is forced to the caller.
func (a *Authorizer) CanCreateNewsAsJournalist(actor identity.Identity) bool {
	return actor.IsJournalist()
}

// CanChangeNews decides update and delete on a news article: admins
// always, journalists only for their own articles. Everyone else,
// including subscribers, is denied.
func (a *Authorizer) CanChangeNews(actor identity.Identity, news *domain.News) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsJournalist() && news.IsOwnedBy(actor.ID)
}

// CanCreateComment decides comment creation: admins and subscribers
// may comment on any existing news. Journalists have no comment rights.
func (a *Authorizer) CanCreateComment(actor identity.Identity) bool {
	return actor.IsAdmin() || actor.IsSubscriber()
}

// CanChangeComment decides update and delete on a comment: admins
// always, subscribers only for comments they created.
func (a *Authorizer) CanChangeComment(actor identity.Identity, comment *domain.Comment) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsSubscriber() && comment.IsCreatedBy(actor.ID)
}
