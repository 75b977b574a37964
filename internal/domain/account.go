package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies what an account may do. Business accounts can
// initiate charges against other users.
type AccountType string

const (
	AccountTypePersonal AccountType = "personal"
	AccountTypeBusiness AccountType = "business"
)

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return t == AccountTypePersonal || t == AccountTypeBusiness
}

// Account is a balance-holding entity owned by exactly one user. The balance
// is mutated only through the ledger commit primitive and never goes negative.
type Account struct {
	ID            string
	AccountNumber string
	OwnerID       string
	Type          AccountType
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateDebit checks if the account holds enough funds to be debited.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
