package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// RegisterRequest represents a request to register a new user.
type RegisterRequest struct {
	Username    string `json:"username"`
	PIN         string `json:"pin"`
	AccountType string `json:"account_type,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username:    r.Username,
		PIN:         r.PIN,
		AccountType: domain.AccountType(r.AccountType),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// TransferRequest represents a request to move funds between accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the acting user.
func (r *TransferRequest) ToUseCaseInput(actingUserID string) usecase.TransferInput {
	return usecase.TransferInput{
		ActingUserID:      actingUserID,
		FromAccountNumber: r.FromAccountNumber,
		ToAccountNumber:   r.ToAccountNumber,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// ChargeRequest represents a merchant charge against a customer.
type ChargeRequest struct {
	BusinessAccountNumber string          `json:"business_account_number"`
	CustomerUsername      string          `json:"customer_username"`
	CustomerPIN           string          `json:"customer_pin"`
	Amount                decimal.Decimal `json:"amount"`
	Reason                string          `json:"reason"`
	Description           string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the acting user.
func (r *ChargeRequest) ToUseCaseInput(actingUserID string) usecase.ChargeInput {
	return usecase.ChargeInput{
		ActingUserID:          actingUserID,
		BusinessAccountNumber: r.BusinessAccountNumber,
		CustomerUsername:      r.CustomerUsername,
		CustomerPIN:           r.CustomerPIN,
		Amount:                r.Amount,
		Reason:                r.Reason,
		Description:           r.Description,
	}
}
