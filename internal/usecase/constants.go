package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	// This prevents long-running transactions from blocking tables.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// AccountNumberAttempts bounds regeneration when a freshly generated
	// account number collides with an existing one.
	AccountNumberAttempts = 5

	// Pagination bounds for listing endpoints.
	DefaultPageSize = 20
	MaxPageSize     = 100
)
