package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/newshub/news-service/internal/identity/domain"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   domain.Role
		wantOK bool
	}{
		{name: "admin", raw: "ADMIN", want: domain.RoleAdmin, wantOK: true},
		{name: "journalist", raw: "JOURNALIST", want: domain.RoleJournalist, wantOK: true},
		{name: "subscriber", raw: "SUBSCRIBER", want: domain.RoleSubscriber, wantOK: true},
		{name: "unknown role rejected", raw: "SUPERUSER", wantOK: false},
		{name: "case sensitive", raw: "admin", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ParseRole(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIdentityRoleChecks(t *testing.T) {
	id := domain.Identity{
		ID:    uuid.New(),
		Roles: []domain.Role{domain.RoleJournalist, domain.RoleSubscriber},
	}

	assert.True(t, id.IsJournalist())
	assert.True(t, id.IsSubscriber())
	assert.False(t, id.IsAdmin())
	assert.True(t, id.HasRole(domain.RoleJournalist))
	assert.False(t, id.HasRole(domain.RoleAdmin))
}

func TestIdentityIsActive(t *testing.T) {
	assert.True(t, domain.Identity{Status: domain.StatusActive}.IsActive())
	assert.False(t, domain.Identity{Status: domain.StatusInactive}.IsActive())
	assert.False(t, domain.Identity{}.IsActive())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both names", first: "Ivan", last: "Petrov", want: "Ivan Petrov"},
		{name: "first only", first: "Ivan", want: "Ivan"},
		{name: "last only", last: "Petrov", want: "Petrov"},
		{name: "empty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := domain.Identity{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, id.DisplayName())
		})
	}
}
