package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/newshub/news-service/internal/identity/domain"
)

// Gateway errors - adapter implementations translate transport failures
// into these sentinels so callers can tell "user does not exist" apart
// from "user service is down". The two must never be conflated.
var (
	// ErrIdentityNotFound is returned when the credential or target user
	// id does not resolve to a known identity.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrGatewayUnavailable is returned when the user service cannot be
	// reached or answers with a server error. Retryable by the caller.
	ErrGatewayUnavailable = errors.New("user service unavailable")
)

// Gateway resolves identities against the external user service.
// Implementations must be timeout-bound: a hung remote call must not
// hang the request beyond the configured deadline.
type Gateway interface {
	// ResolveCaller returns the identity behind the bearer credential.
	ResolveCaller(ctx context.Context, credential string) (domain.Identity, error)

	// ResolveUser returns the identity of the given user id, using the
	// caller's credential for the upstream request. Used to cross-check
	// authorship claims when an admin attributes news to another user.
	ResolveUser(ctx context.Context, userID uuid.UUID, credential string) (domain.Identity, error)
}
