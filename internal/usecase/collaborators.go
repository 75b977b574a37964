package usecase

import (
	"context"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/bluezonesai/fake-bank-turso/internal/usecase CredentialVerifier

// CredentialVerifier checks a username/PIN pair. Login and the charge
// engine's third-party re-authentication must share one implementation so
// both paths apply the identical rule.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, pin string) (*domain.User, error)
}

// IDGenerator generates unique, creation-ordered IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator generates externally addressable account numbers.
// Numbers must be collision-resistant and not predictable from issuance
// order.
type AccountNumberGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures with bounded
// backoff. Exhausted retries surface as domain.ErrTransient.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
