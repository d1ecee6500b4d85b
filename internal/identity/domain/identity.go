package domain

import (
	"github.com/google/uuid"
)

// Role is the closed set of roles the user service may assign.
// Role strings from the wire are parsed exactly once, at identity
// resolution time; everything downstream works with this enum.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleJournalist Role = "JOURNALIST"
	RoleSubscriber Role = "SUBSCRIBER"
)

// ParseRole maps a raw role name to a Role. Unknown names are rejected
// so a new upstream role never silently grants permissions here.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleAdmin, RoleJournalist, RoleSubscriber:
		return Role(name), true
	default:
		return "", false
	}
}

// Status is the account status reported by the user service.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "NOT_ACTIVE"
)

// Identity is the caller's resolved user record, fetched fresh from the
// external user service per request. It is never persisted locally, so a
// revoked role takes effect on the next request.
type Identity struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Roles     []Role
	Status    Status
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool      { return i.HasRole(RoleAdmin) }
func (i Identity) IsJournalist() bool { return i.HasRole(RoleJournalist) }
func (i Identity) IsSubscriber() bool { return i.HasRole(RoleSubscriber) }

// IsActive reports whether the account may perform mutations.
func (i Identity) IsActive() bool {
	return i.Status == StatusActive
}

// DisplayName is the denormalized username snapshot stored on comments
// at creation time.
func (i Identity) DisplayName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}
