package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	postgresRepo "github.com/bluezonesai/fake-bank-turso/internal/adapter/repository/postgres"
	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
	"github.com/bluezonesai/fake-bank-turso/tests/testutil"
)

func newStack(testDB *testutil.TestDB) (*usecase.TransferUseCase, *usecase.ChargeUseCase, *usecase.AccountDirectory) {
	pool := testDB.Pool

	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	txManager := postgresRepo.NewTxManager(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	directory := usecase.NewAccountDirectory(accountRepo, userRepo, txnRepo)
	ledger := usecase.NewLedger(txManager, accountRepo, txnRepo, idGen, retrier)
	verifier := usecase.NewPINVerifier(userRepo)

	return usecase.NewTransferUseCase(directory, ledger),
		usecase.NewChargeUseCase(directory, ledger, verifier),
		directory
}

func TestTransferIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	transferUC, _, directory := newStack(testDB)

	t.Run("moves money and records the transaction", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")
		source := testDB.CreateTestAccount(ctx, alice.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(100))
		dest := testDB.CreateTestAccount(ctx, bob.ID, "100000000002", domain.AccountTypePersonal, decimal.Zero)

		result, err := transferUC.Transfer(ctx, usecase.TransferInput{
			ActingUserID:      alice.ID,
			FromAccountNumber: source.AccountNumber,
			ToAccountNumber:   dest.AccountNumber,
			Amount:            decimal.NewFromInt(30),
			Description:       "dinner",
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		if !result.NewBalance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected new balance 70, got %s", result.NewBalance)
		}

		accounts, err := directory.ListAccounts(ctx, bob.ID)
		if err != nil {
			t.Fatalf("failed to list accounts: %v", err)
		}
		if !accounts[0].Balance.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected destination balance 30, got %s", accounts[0].Balance)
		}

		txns, err := directory.ListTransactions(ctx, source.ID, alice.ID, 10, 0)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(txns) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txns))
		}
		if txns[0].Type != domain.TransactionTypeTransfer {
			t.Errorf("expected transfer type, got %s", txns[0].Type)
		}
		if txns[0].Description != "dinner" {
			t.Errorf("expected description dinner, got %q", txns[0].Description)
		}
	})

	t.Run("insufficient funds leaves both balances untouched", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")
		source := testDB.CreateTestAccount(ctx, alice.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(50))
		dest := testDB.CreateTestAccount(ctx, bob.ID, "100000000002", domain.AccountTypePersonal, decimal.NewFromInt(10))

		_, err := transferUC.Transfer(ctx, usecase.TransferInput{
			ActingUserID:      alice.ID,
			FromAccountNumber: source.AccountNumber,
			ToAccountNumber:   dest.AccountNumber,
			Amount:            decimal.NewFromInt(100),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected insufficient funds, got %v", err)
		}

		aliceAccounts, _ := directory.ListAccounts(ctx, alice.ID)
		bobAccounts, _ := directory.ListAccounts(ctx, bob.ID)

		if !aliceAccounts[0].Balance.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected source balance 50, got %s", aliceAccounts[0].Balance)
		}
		if !bobAccounts[0].Balance.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected destination balance 10, got %s", bobAccounts[0].Balance)
		}

		txns, _ := directory.ListTransactions(ctx, source.ID, alice.ID, 10, 0)
		if len(txns) != 0 {
			t.Errorf("expected no transactions, got %d", len(txns))
		}
	})

	t.Run("cannot move someone else's money", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")
		source := testDB.CreateTestAccount(ctx, bob.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(100))
		dest := testDB.CreateTestAccount(ctx, alice.ID, "100000000002", domain.AccountTypePersonal, decimal.Zero)

		_, err := transferUC.Transfer(ctx, usecase.TransferInput{
			ActingUserID:      alice.ID,
			FromAccountNumber: source.AccountNumber,
			ToAccountNumber:   dest.AccountNumber,
			Amount:            decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrSourceAccountNotFound) {
			t.Fatalf("expected source account not found, got %v", err)
		}
	})
}
