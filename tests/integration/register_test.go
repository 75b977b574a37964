package integration

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	postgresRepo "github.com/bluezonesai/fake-bank-turso/internal/adapter/repository/postgres"
	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
	"github.com/bluezonesai/fake-bank-turso/tests/testutil"
)

func TestRegisterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txManager := postgresRepo.NewTxManager(pool)
	idGen := postgresRepo.NewULIDGenerator()
	numberGen := postgresRepo.NewRandomAccountNumberGenerator()
	verifier := usecase.NewPINVerifier(userRepo)

	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, idGen, numberGen, verifier, bcrypt.MinCost)

	t.Run("register creates user and zero-balance account", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		result, err := userUC.Register(ctx, usecase.RegisterInput{
			Username:    "alice",
			PIN:         "1234",
			AccountType: domain.AccountTypeBusiness,
		})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}

		if result.Account.OwnerID != result.User.ID {
			t.Errorf("account owner %s does not match user %s", result.Account.OwnerID, result.User.ID)
		}
		if result.Account.Type != domain.AccountTypeBusiness {
			t.Errorf("expected business account, got %s", result.Account.Type)
		}
		if !result.Account.Balance.IsZero() {
			t.Errorf("expected zero balance, got %s", result.Account.Balance)
		}
	})

	t.Run("duplicate username hits the unique constraint", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		if _, err := userUC.Register(ctx, usecase.RegisterInput{Username: "alice", PIN: "1234"}); err != nil {
			t.Fatalf("first register failed: %v", err)
		}

		_, err := userUC.Register(ctx, usecase.RegisterInput{Username: "alice", PIN: "5678"})
		if !errors.Is(err, domain.ErrDuplicateUsername) {
			t.Fatalf("expected duplicate username, got %v", err)
		}
	})

	t.Run("authenticate returns the user's accounts", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		reg, err := userUC.Register(ctx, usecase.RegisterInput{Username: "alice", PIN: "1234"})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}

		auth, err := userUC.Authenticate(ctx, "alice", "1234")
		if err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}
		if auth.User.ID != reg.User.ID {
			t.Errorf("authenticated as %s, registered as %s", auth.User.ID, reg.User.ID)
		}
		if len(auth.Accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(auth.Accounts))
		}

		if _, err := userUC.Authenticate(ctx, "alice", "0000"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})
}
