package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// TransferUseCase executes peer-to-peer transfers. It is stateless and safe
// for concurrent use; all mutation goes through the Ledger commit primitive.
type TransferUseCase struct {
	directory *AccountDirectory
	ledger    *Ledger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(directory *AccountDirectory, ledger *Ledger) *TransferUseCase {
	return &TransferUseCase{
		directory: directory,
		ledger:    ledger,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	ActingUserID      string
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Description       string
}

// TransferResult is the outcome of a successful transfer.
type TransferResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
}

// Transfer validates and executes a two-party balance move. Preconditions
// are checked in a fixed order and the first failure wins; the
// insufficient-funds check is repeated under lock at commit time.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	fromAccount, err := uc.directory.ResolveOwnedAccount(ctx, input.FromAccountNumber, input.ActingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotOwned) {
			return nil, domain.ErrSourceAccountNotFound
		}

		return nil, err
	}

	toAccount, err := uc.directory.ResolveAnyAccount(ctx, input.ToAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrDestinationAccountNotFound
		}

		return nil, err
	}

	if fromAccount.ID == toAccount.ID {
		return nil, domain.ErrSameAccount
	}

	// Early check for a friendly error; the commit re-checks under lock.
	if err := fromAccount.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	result, err := uc.ledger.CommitTransfer(
		ctx,
		fromAccount.ID,
		toAccount.ID,
		input.Amount,
		input.Description,
		domain.TransactionTypeTransfer,
	)
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		Transaction: result.Transaction,
		NewBalance:  result.FromBalance,
	}, nil
}
