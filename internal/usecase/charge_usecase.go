package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// ChargeUseCase executes credential-gated merchant charges: a business
// account debits a customer who re-authenticates with their own PIN.
type ChargeUseCase struct {
	directory *AccountDirectory
	ledger    *Ledger
	verifier  CredentialVerifier
}

// NewChargeUseCase creates a new ChargeUseCase.
func NewChargeUseCase(directory *AccountDirectory, ledger *Ledger, verifier CredentialVerifier) *ChargeUseCase {
	return &ChargeUseCase{
		directory: directory,
		ledger:    ledger,
		verifier:  verifier,
	}
}

// ChargeInput represents input for a charge.
type ChargeInput struct {
	ActingUserID          string
	BusinessAccountNumber string
	CustomerUsername      string
	CustomerPIN           string
	Amount                decimal.Decimal
	Reason                string
	Description           string
}

// Invoice summarizes a completed charge.
type Invoice struct {
	Reason          string
	Amount          decimal.Decimal
	Customer        string
	BusinessAccount string
}

// ChargeResult is the outcome of a successful charge.
type ChargeResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
	Invoice     Invoice
}

// Charge validates and executes a three-party balance move. The customer is
// fully re-authenticated with the same rule as login, not merely looked up.
// Preconditions run in a fixed order and the first failure wins.
func (uc *ChargeUseCase) Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Reason) == "" {
		return nil, domain.ErrMissingReason
	}

	businessAccount, err := uc.directory.ResolveBusinessAccountOwnedBy(ctx, input.BusinessAccountNumber, input.ActingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotOwned) {
			return nil, domain.ErrBusinessAccountNotFound
		}

		return nil, err
	}

	customer, err := uc.verifier.Verify(ctx, input.CustomerUsername, input.CustomerPIN)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCustomerCredentials
		}

		return nil, err
	}

	customerAccount, err := uc.directory.FirstAccountOf(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrCustomerAccountNotFound
		}

		return nil, err
	}

	// Early check; re-verified under lock inside the commit.
	if err := customerAccount.ValidateDebit(input.Amount); err != nil {
		return nil, domain.ErrCustomerInsufficientFunds
	}

	result, err := uc.ledger.CommitTransfer(
		ctx,
		customerAccount.ID,
		businessAccount.ID,
		input.Amount,
		invoiceDescription(input.Reason, input.Description),
		domain.TransactionTypeCharge,
	)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, domain.ErrCustomerInsufficientFunds
		}

		return nil, err
	}

	return &ChargeResult{
		Transaction: result.Transaction,
		NewBalance:  result.ToBalance,
		Invoice: Invoice{
			Reason:          input.Reason,
			Amount:          input.Amount,
			Customer:        customer.Username,
			BusinessAccount: businessAccount.AccountNumber,
		},
	}, nil
}

func invoiceDescription(reason, description string) string {
	full := fmt.Sprintf("INVOICE: %s", reason)
	if description != "" {
		full += fmt.Sprintf(" - %s", description)
	}

	return full
}
