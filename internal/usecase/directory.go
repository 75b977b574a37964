package usecase

import (
	"context"
	"errors"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// AccountDirectory resolves account references and enforces the ownership
// and type rules the transfer and charge engines depend on.
type AccountDirectory struct {
	accountRepo AccountRepository
	userRepo    UserRepository
	txnRepo     TransactionRepository
}

// NewAccountDirectory creates a new AccountDirectory.
func NewAccountDirectory(accountRepo AccountRepository, userRepo UserRepository, txnRepo TransactionRepository) *AccountDirectory {
	return &AccountDirectory{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		txnRepo:     txnRepo,
	}
}

// ResolveOwnedAccount resolves an account number to an account owned by
// ownerID. Absence and ownership mismatch are indistinguishable to the
// caller.
func (d *AccountDirectory) ResolveOwnedAccount(ctx context.Context, accountNumber, ownerID string) (*domain.Account, error) {
	account, err := d.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotOwned
		}

		return nil, err
	}

	if account.OwnerID != ownerID {
		return nil, domain.ErrAccountNotOwned
	}

	return account, nil
}

// ResolveAnyAccount resolves an account number to any existing account.
func (d *AccountDirectory) ResolveAnyAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return d.accountRepo.GetByNumber(ctx, accountNumber)
}

// ResolveBusinessAccountOwnedBy resolves an account number to a business
// account owned by ownerID.
func (d *AccountDirectory) ResolveBusinessAccountOwnedBy(ctx context.Context, accountNumber, ownerID string) (*domain.Account, error) {
	account, err := d.ResolveOwnedAccount(ctx, accountNumber, ownerID)
	if err != nil {
		return nil, err
	}

	if account.Type != domain.AccountTypeBusiness {
		return nil, domain.ErrAccountNotOwned
	}

	return account, nil
}

// FirstAccountOf returns the user's primary account: the earliest-created
// account on record. Users with several accounts always have charges routed
// here; callers cannot select another account yet.
func (d *AccountDirectory) FirstAccountOf(ctx context.Context, userID string) (*domain.Account, error) {
	accounts, err := d.accountRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	return accounts[0], nil
}

// ListAccounts returns all accounts owned by the user, oldest first.
func (d *AccountDirectory) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return d.accountRepo.ListByOwner(ctx, userID)
}

// ListTransactions returns the transaction history of an account after
// verifying the acting user owns it.
func (d *AccountDirectory) ListTransactions(ctx context.Context, accountID, actingUserID string, limit, offset int) ([]*domain.Transaction, error) {
	account, err := d.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotOwned
		}

		return nil, err
	}

	if account.OwnerID != actingUserID {
		return nil, domain.ErrAccountNotOwned
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return d.txnRepo.ListByAccount(ctx, accountID, limit, offset)
}

// AccountProjection is the deliberately limited view returned by Search.
// It never carries a balance, whoever asks.
type AccountProjection struct {
	AccountNumber string
	Type          domain.AccountType
	OwnerUsername string
}

// Search looks up an account by number and returns the public projection.
func (d *AccountDirectory) Search(ctx context.Context, accountNumber string) (*AccountProjection, error) {
	account, err := d.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	owner, err := d.userRepo.GetByID(ctx, account.OwnerID)
	if err != nil {
		return nil, err
	}

	return &AccountProjection{
		AccountNumber: account.AccountNumber,
		Type:          account.Type,
		OwnerUsername: owner.Username,
	}, nil
}
