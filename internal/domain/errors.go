package domain

import "errors"

var (
	// User errors
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or PIN")

	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountNotOwned        = errors.New("account not found or not owned by user")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// Transfer errors
	ErrSourceAccountNotFound      = errors.New("source account not found or not owned by user")
	ErrDestinationAccountNotFound = errors.New("destination account not found")

	// Transaction errors
	ErrSameAccount            = errors.New("cannot transfer to same account")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrTransactionNotFound    = errors.New("transaction not found")

	// Charge errors
	ErrMissingReason              = errors.New("charge reason is required")
	ErrBusinessAccountNotFound    = errors.New("business account not found or not owned by user")
	ErrInvalidCustomerCredentials = errors.New("invalid customer credentials")
	ErrCustomerAccountNotFound    = errors.New("customer account not found")
	ErrCustomerInsufficientFunds  = errors.New("customer has insufficient funds")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")

	// ErrTransient marks infrastructure failures (lock conflicts, timeouts)
	// that survived the store's bounded retries. Callers may retry the whole
	// operation; balances are untouched.
	ErrTransient = errors.New("transient storage failure")
)
