package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	identity "github.com/newshub/news-service/internal/identity/domain"
	"github.com/newshub/news-service/internal/news/domain"
)

func identityWithRoles(id uuid.UUID, roles ...identity.Role) identity.Identity {
	return identity.Identity{ID: id, Roles: roles, Status: identity.StatusActive}
}

func TestCanChangeNews(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	news := &domain.News{ID: uuid.New(), AuthorID: owner}

	authz := NewAuthorizer()

	tests := []struct {
		name  string
		actor identity.Identity
		want  bool
	}{
		{name: "admin may change any news", actor: identityWithRoles(stranger, identity.RoleAdmin), want: true},
		{name: "journalist may change own news", actor: identityWithRoles(owner, identity.RoleJournalist), want: true},
		{name: "journalist may not change another author's news", actor: identityWithRoles(stranger, identity.RoleJournalist), want: false},
		{name: "subscriber may not change news even as author", actor: identityWithRoles(owner, identity.RoleSubscriber), want: false},
		{name: "no roles denied", actor: identityWithRoles(owner), want: false},
		{name: "admin who is also journalist allowed on foreign news", actor: identityWithRoles(stranger, identity.RoleJournalist, identity.RoleAdmin), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanChangeNews(tt.actor, news))
		})
	}
}

func TestCanCreateNews(t *testing.T) {
	authz := NewAuthorizer()
	admin := identityWithRoles(uuid.New(), identity.RoleAdmin)
	journalist := identityWithRoles(uuid.New(), identity.RoleJournalist)
	subscriber := identityWithRoles(uuid.New(), identity.RoleSubscriber)

	assert.True(t, authz.CanCreateNewsAsAdmin(admin))
	assert.False(t, authz.CanCreateNewsAsAdmin(journalist))
	assert.False(t, authz.CanCreateNewsAsAdmin(subscriber))

	assert.True(t, authz.CanCreateNewsAsJournalist(journalist))
	assert.False(t, authz.CanCreateNewsAsJournalist(admin))
	assert.False(t, authz.CanCreateNewsAsJournalist(subscriber))
}

func TestCanCreateComment(t *testing.T) {
	authz := NewAuthorizer()

	assert.True(t, authz.CanCreateComment(identityWithRoles(uuid.New(), identity.RoleAdmin)))
	assert.True(t, authz.CanCreateComment(identityWithRoles(uuid.New(), identity.RoleSubscriber)))
	assert.False(t, authz.CanCreateComment(identityWithRoles(uuid.New(), identity.RoleJournalist)))
	assert.False(t, authz.CanCreateComment(identityWithRoles(uuid.New())))
}

func TestCanChangeComment(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	comment := &domain.Comment{ID: uuid.New(), CreatedBy: owner}

	authz := NewAuthorizer()

	tests := []struct {
		name  string
		actor identity.Identity
		want  bool
	}{
		{name: "admin may change any comment", actor: identityWithRoles(stranger, identity.RoleAdmin), want: true},
		{name: "subscriber may change own comment", actor: identityWithRoles(owner, identity.RoleSubscriber), want: true},
		{name: "subscriber may not change another user's comment", actor: identityWithRoles(stranger, identity.RoleSubscriber), want: false},
		{name: "journalist has no comment rights even on own comment", actor: identityWithRoles(owner, identity.RoleJournalist), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanChangeComment(tt.actor, comment))
		})
	}
}
