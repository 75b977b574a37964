package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
	"github.com/bluezonesai/fake-bank-turso/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	transferUC, _, directory := newStack(testDB)

	t.Run("100 concurrent transfers from same account no overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")

		// Exactly enough for 100 transfers of 10
		source := testDB.CreateTestAccount(ctx, alice.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(1000))
		dest := testDB.CreateTestAccount(ctx, bob.ID, "100000000002", domain.AccountTypePersonal, decimal.Zero)

		numTransfers := 100
		transferAmount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					ActingUserID:      alice.ID,
					FromAccountNumber: source.AccountNumber,
					ToAccountNumber:   dest.AccountNumber,
					Amount:            transferAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		aliceAccounts, _ := directory.ListAccounts(ctx, alice.ID)
		bobAccounts, _ := directory.ListAccounts(ctx, bob.ID)

		if !aliceAccounts[0].Balance.Equal(decimal.Zero) {
			t.Errorf("expected source balance 0, got %s", aliceAccounts[0].Balance)
		}
		if !bobAccounts[0].Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected dest balance 1000, got %s", bobAccounts[0].Balance)
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")
		source := testDB.CreateTestAccount(ctx, alice.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(100))
		dest := testDB.CreateTestAccount(ctx, bob.ID, "100000000002", domain.AccountTypePersonal, decimal.Zero)

		numTransfers := 20
		transferAmount := decimal.NewFromInt(10) // 20 * 10 = 200 > 100

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					ActingUserID:      alice.ID,
					FromAccountNumber: source.AccountNumber,
					ToAccountNumber:   dest.AccountNumber,
					Amount:            transferAmount,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// Only 10 can succeed (100 / 10 = 10); the rest fail under lock
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful transfers, got %d", successCount.Load())
		}

		aliceAccounts, _ := directory.ListAccounts(ctx, alice.ID)
		if !aliceAccounts[0].Balance.Equal(decimal.Zero) {
			t.Errorf("expected source balance 0, got %s", aliceAccounts[0].Balance)
		}
	})

	t.Run("deadlock prevention with cross-account transfers", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice := testDB.CreateTestUser(ctx, "alice", "1234")
		bob := testDB.CreateTestUser(ctx, "bob", "5678")
		a := testDB.CreateTestAccount(ctx, alice.ID, "100000000001", domain.AccountTypePersonal, decimal.NewFromInt(1000))
		b := testDB.CreateTestAccount(ctx, bob.ID, "100000000002", domain.AccountTypePersonal, decimal.NewFromInt(1000))

		numTransfers := 50

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		// Half transfer A -> B, half transfer B -> A concurrently

		wg.Add(numTransfers * 2)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					ActingUserID:      alice.ID,
					FromAccountNumber: a.AccountNumber,
					ToAccountNumber:   b.AccountNumber,
					Amount:            decimal.NewFromInt(10),
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					ActingUserID:      bob.ID,
					FromAccountNumber: b.AccountNumber,
					ToAccountNumber:   a.AccountNumber,
					Amount:            decimal.NewFromInt(10),
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// Locks are taken in ID order, so no pair can deadlock
		if successCount.Load() != int32(numTransfers*2) {
			t.Errorf("expected %d successful transfers, got %d", numTransfers*2, successCount.Load())
		}

		// Equal opposite transfers leave balances unchanged
		aliceAccounts, _ := directory.ListAccounts(ctx, alice.ID)
		bobAccounts, _ := directory.ListAccounts(ctx, bob.ID)

		if !aliceAccounts[0].Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected a balance 1000, got %s", aliceAccounts[0].Balance)
		}
		if !bobAccounts[0].Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected b balance 1000, got %s", bobAccounts[0].Balance)
		}
	})
}
