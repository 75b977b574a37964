package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// Ledger owns the single atomic mutation primitive of the system. Every
// balance change, whether a transfer or a charge, goes through
// CommitTransfer, which performs check, debit, credit and audit-record
// insertion inside one database transaction.
type Ledger struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewLedger creates a new Ledger.
func NewLedger(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
) *Ledger {
	return &Ledger{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// CommitResult reports the outcome of a committed balance movement.
type CommitResult struct {
	Transaction *domain.Transaction
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// CommitTransfer atomically moves amount from one account to the other and
// records the transaction. The insufficient-funds check runs under row locks,
// so a stale upfront check can never over-draft the source. Lock conflicts
// are retried with bounded backoff; exhaustion returns domain.ErrTransient.
func (l *Ledger) CommitTransfer(
	ctx context.Context,
	fromAccountID, toAccountID string,
	amount decimal.Decimal,
	description string,
	txnType domain.TransactionType,
) (*CommitResult, error) {
	if fromAccountID == toAccountID {
		return nil, domain.ErrSameAccount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var result *CommitResult

	err := l.retrier.Retry(ctx, func() error {
		res, err := l.commit(ctx, fromAccountID, toAccountID, amount, description, txnType)
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (l *Ledger) commit(
	ctx context.Context,
	fromAccountID, toAccountID string,
	amount decimal.Decimal,
	description string,
	txnType domain.TransactionType,
) (*CommitResult, error) {
	tx, err := l.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending ID order so two commits touching the same
	// pair can never deadlock each other.
	ids := []string{fromAccountID, toAccountID}
	sort.Strings(ids)

	accounts, err := l.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var fromAccount, toAccount *domain.Account

	for _, a := range accounts {
		switch a.ID {
		case fromAccountID:
			fromAccount = a
		case toAccountID:
			toAccount = a
		}
	}

	if fromAccount == nil || toAccount == nil {
		return nil, domain.ErrAccountNotFound
	}

	// Re-check under lock; this is the check that counts.
	if err := fromAccount.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:            l.idGen.Generate(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Description:   description,
		Type:          txnType,
		CreatedAt:     now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	fromBalance := fromAccount.ApplyDebit(amount)
	if err := l.accountRepo.UpdateBalance(ctx, tx, fromAccountID, fromBalance, now); err != nil {
		return nil, err
	}

	toBalance := toAccount.ApplyCredit(amount)
	if err := l.accountRepo.UpdateBalance(ctx, tx, toAccountID, toBalance, now); err != nil {
		return nil, err
	}

	if err := l.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CommitResult{
		Transaction: txn,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

// ListTransactionsForAccount returns the account's history, most recent
// first. Repeated calls return identical results absent new commits.
func (l *Ledger) ListTransactionsForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return l.txnRepo.ListByAccount(ctx, accountID, limit, offset)
}
