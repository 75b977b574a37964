package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const insertAccountQuery = `
	INSERT INTO accounts (id, account_number, owner_id, type, balance, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const selectAccountColumns = `
	SELECT id, account_number, owner_id, type, balance, created_at, updated_at
	FROM accounts
`

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, insertAccountQuery,
		account.ID,
		account.AccountNumber,
		account.OwnerID,
		string(account.Type),
		decimalToNumeric(account.Balance),
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapAccountError(err)
}

// CreateTx inserts a new account inside an existing transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertAccountQuery,
		account.ID,
		account.AccountNumber,
		account.OwnerID,
		string(account.Type),
		decimalToNumeric(account.Balance),
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapAccountError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, selectAccountColumns+` WHERE id = $1`, id)
	return scanAccount(row)
}

// GetByNumber retrieves an account by its account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, selectAccountColumns+` WHERE account_number = $1`, accountNumber)
	return scanAccount(row)
}

// ListByOwner lists a user's accounts, oldest first.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	query := selectAccountColumns + `
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// GetByIDsForUpdate locks and retrieves multiple accounts inside a
// transaction. Rows are locked in ascending ID order; callers must pass IDs
// pre-sorted so concurrent commits acquire locks in the same order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := selectAccountColumns + `
		WHERE id = ANY($1)
		ORDER BY id ASC
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account inside a transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account     domain.Account
		accountType string
		balance     pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.OwnerID,
		&accountType,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Balance = numericToDecimal(balance)

	return &account, nil
}

func mapAccountError(err error) error {
	if isUniqueViolation(err, "accounts_account_number_key") {
		return domain.ErrDuplicateAccountNumber
	}

	return err
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
