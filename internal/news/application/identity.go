package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	identity "github.com/newshub/news-service/internal/identity/domain"
	identityports "github.com/newshub/news-service/internal/identity/ports"
)

// resolveCaller fetches the identity behind the bearer credential and
// verifies the account is allowed to mutate. Identity resolution always
// happens-before authorization, which happens-before persistence.
func resolveCaller(ctx context.Context, gateway identityports.Gateway, credential string) (identity.Identity, error) {
	if credential == "" {
		return identity.Identity{}, ErrMissingCredential
	}

	caller, err := gateway.ResolveCaller(ctx, credential)
	switch {
	case errors.Is(err, identityports.ErrIdentityNotFound):
		return identity.Identity{}, ErrMissingCredential
	case err != nil:
		// Gateway unreachable or misbehaving is never reported as
		// "user doesn't exist".
		return identity.Identity{}, gatewayUnavailableErr(err)
	}

	if !caller.IsActive() {
		return identity.Identity{}, ErrAccountInactive
	}
	return caller, nil
}

// resolveUser fetches the identity of a target user id, e.g. to verify
// that an admin-supplied author actually exists.
func resolveUser(ctx context.Context, gateway identityports.Gateway, userID uuid.UUID, credential string) (identity.Identity, error) {
	user, err := gateway.ResolveUser(ctx, userID, credential)
	switch {
	case errors.Is(err, identityports.ErrIdentityNotFound):
		return identity.Identity{}, userNotFoundErr(userID)
	case err != nil:
		return identity.Identity{}, gatewayUnavailableErr(err)
	}
	return user, nil
}
