package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes peer transfers from merchant charges.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeCharge   TransactionType = "charge"
)

// IsValid checks if the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeTransfer || t == TransactionTypeCharge
}

// Transaction is an immutable ledger entry recording one completed balance
// movement. It is inserted in the same database transaction as the two
// balance mutations it records and is never updated afterward.
type Transaction struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	Type          TransactionType
	CreatedAt     time.Time
}

// Validate validates the transaction invariants.
func (t *Transaction) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	return nil
}
