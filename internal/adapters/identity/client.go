package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/newshub/news-service/internal/identity/domain"
	"github.com/newshub/news-service/internal/identity/ports"
	"github.com/newshub/news-service/internal/platform/logger"
)

const (
	callerDetailsPath = "/api/v1/users/details"
	userByIDPath      = "/api/v1/admin/"
)

// Config holds the settings for the user service client.
type Config struct {
	// BaseURL is the root of the user service, without a trailing slash.
	BaseURL string

	// Timeout bounds each upstream request.
	Timeout time.Duration
}

// Client resolves identities against the external user service over
// HTTP. All calls go through a circuit breaker: once the user service
// starts failing consistently the breaker opens and calls fail fast as
// ErrGatewayUnavailable instead of piling up on a dead upstream.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger
}

// NewClient creates a user service client.
func NewClient(cfg Config, log logger.Logger) *Client {
	settings := gobreaker.Settings{
		Name:        "user-service",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		// A 404 is a healthy answer from the upstream's point of view;
		// only transport and server errors may trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrIdentityNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state changed",
				"circuit", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  log,
	}
}

// identityResponse is the upstream representation of a user.
type identityResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
}

// ResolveCaller returns the identity behind the bearer credential.
func (c *Client) ResolveCaller(ctx context.Context, credential string) (domain.Identity, error) {
	return c.fetch(ctx, c.baseURL+callerDetailsPath, credential)
}

// ResolveUser returns the identity of the given user id.
func (c *Client) ResolveUser(ctx context.Context, userID uuid.UUID, credential string) (domain.Identity, error) {
	return c.fetch(ctx, c.baseURL+userByIDPath+userID.String(), credential)
}

func (c *Client) fetch(ctx context.Context, url, credential string) (domain.Identity, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.doFetch(ctx, url, credential)
	})
	if err != nil {
		if errors.Is(err, ports.ErrIdentityNotFound) {
			return domain.Identity{}, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.Identity{}, fmt.Errorf("%w: circuit open", ports.ErrGatewayUnavailable)
		}
		return domain.Identity{}, err
	}
	return result.(domain.Identity), nil
}

func (c *Client) doFetch(ctx context.Context, url, credential string) (domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("identity.Client: build request: %w", err)
	}
	req.Header.Set("Authorization", credential)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ports.ErrGatewayUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Decoded below.
	case resp.StatusCode == http.StatusNotFound:
		return domain.Identity{}, ports.ErrIdentityNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The upstream rejected the credential itself.
		return domain.Identity{}, ports.ErrIdentityNotFound
	default:
		c.logger.Warn(ctx, "user service returned unexpected status", "status", resp.StatusCode, "url", url)
		return domain.Identity{}, fmt.Errorf("%w: status %d", ports.ErrGatewayUnavailable, resp.StatusCode)
	}

	var payload identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: decode response: %v", ports.ErrGatewayUnavailable, err)
	}

	return toDomain(payload)
}

// toDomain converts the upstream payload, dropping role strings that do
// not parse to a known role.
func toDomain(payload identityResponse) (domain.Identity, error) {
	roles := make([]domain.Role, 0, len(payload.Roles))
	for _, raw := range payload.Roles {
		role, ok := domain.ParseRole(raw)
		if !ok {
			continue
		}
		roles = append(roles, role)
	}

	if payload.ID == uuid.Nil {
		return domain.Identity{}, fmt.Errorf("%w: upstream identity has no id", ports.ErrGatewayUnavailable)
	}

	return domain.Identity{
		ID:        payload.ID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Roles:     roles,
		Status:    domain.Status(payload.Status),
	}, nil
}

// Compile-time check to ensure Client implements ports.Gateway
var _ ports.Gateway = (*Client)(nil)
