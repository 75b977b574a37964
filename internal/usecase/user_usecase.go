package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// UserUseCase handles registration and authentication.
type UserUseCase struct {
	txManager   TransactionManager
	userRepo    UserRepository
	accountRepo AccountRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
	verifier    CredentialVerifier
	bcryptCost  int
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	numberGen AccountNumberGenerator,
	verifier CredentialVerifier,
	bcryptCost int,
) *UserUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
		numberGen:   numberGen,
		verifier:    verifier,
		bcryptCost:  bcryptCost,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username    string
	PIN         string
	AccountType domain.AccountType
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User    *domain.User
	Account *domain.Account
}

// Register creates a user and their first account in one database
// transaction. The PIN is stored bcrypt-hashed, never in the clear.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	accountType := input.AccountType
	if accountType == "" {
		accountType = domain.AccountTypePersonal
	}

	if !accountType.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.PIN), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Username:  input.Username,
		HashedPIN: string(hashed),
		CreatedAt: now,
	}

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		OwnerID:   user.ID,
		Type:      accountType,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Account numbers are random; regenerate on the rare collision.
	for attempt := 0; ; attempt++ {
		account.AccountNumber = uc.numberGen.Generate()

		err = uc.createUserAndAccount(ctx, user, account)
		if err == nil {
			break
		}

		if errors.Is(err, domain.ErrDuplicateAccountNumber) && attempt < AccountNumberAttempts-1 {
			continue
		}

		return nil, err
	}

	return &RegisterResult{User: user, Account: account}, nil
}

func (uc *UserUseCase) createUserAndAccount(ctx context.Context, user *domain.User, account *domain.Account) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return err
	}

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AuthenticateResult is the outcome of a successful login.
type AuthenticateResult struct {
	User     *domain.User
	Accounts []*domain.Account
}

// Authenticate verifies credentials and returns the user with their
// accounts. It routes through the same CredentialVerifier the charge engine
// uses for third-party re-authentication.
func (uc *UserUseCase) Authenticate(ctx context.Context, username, pin string) (*AuthenticateResult, error) {
	user, err := uc.verifier.Verify(ctx, username, pin)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthenticateResult{User: user, Accounts: accounts}, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// PINVerifier implements CredentialVerifier with bcrypt comparison against
// the stored hash. A missing user and a wrong PIN are indistinguishable.
type PINVerifier struct {
	userRepo UserRepository
}

// NewPINVerifier creates a new PINVerifier.
func NewPINVerifier(userRepo UserRepository) *PINVerifier {
	return &PINVerifier{userRepo: userRepo}
}

// Verify checks the username/PIN pair and returns the matching user.
func (v *PINVerifier) Verify(ctx context.Context, username, pin string) (*domain.User, error) {
	user, err := v.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPIN), []byte(pin)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
