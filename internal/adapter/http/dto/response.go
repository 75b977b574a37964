package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// UserResponse represents a user in API responses. The PIN hash never
// leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		Type:          string(a.Type),
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	User    *UserResponse    `json:"user"`
	Account *AccountResponse `json:"account"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token    string             `json:"token"`
	User     *UserResponse      `json:"user"`
	Accounts []*AccountResponse `json:"accounts"`
}

// TransferResponse is returned after a successful transfer.
type TransferResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal      `json:"new_balance"`
}

// InvoiceResponse summarizes a completed charge.
type InvoiceResponse struct {
	Reason          string          `json:"reason"`
	Amount          decimal.Decimal `json:"amount"`
	Customer        string          `json:"customer"`
	BusinessAccount string          `json:"business_account"`
}

// ChargeResponse is returned after a successful charge.
type ChargeResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal      `json:"new_balance"`
	Invoice     InvoiceResponse      `json:"invoice"`
}

// SearchResponse is the public projection of an account. It carries no
// balance regardless of who asks.
type SearchResponse struct {
	AccountNumber string `json:"account_number"`
	Type          string `json:"type"`
	OwnerUsername string `json:"owner_username"`
}

// SearchFromProjection converts a projection to a response.
func SearchFromProjection(p *usecase.AccountProjection) *SearchResponse {
	return &SearchResponse{
		AccountNumber: p.AccountNumber,
		Type:          string(p.Type),
		OwnerUsername: p.OwnerUsername,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
