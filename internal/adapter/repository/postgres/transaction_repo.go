package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Records are
// append-only; there is no update or delete path.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside an existing transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, from_account_id, to_account_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.FromAccountID,
		txn.ToAccountID,
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		txn.Description,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount, type, description, created_at
		FROM transactions
		WHERE id = $1
	`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByAccount lists transactions touching an account, newest first. The ID
// is the tie-break so the order is stable for records sharing a timestamp.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount, type, description, created_at
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		txn     domain.Transaction
		txnType string
		amount  pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&amount,
		&txnType,
		&txn.Description,
		&txn.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Amount = numericToDecimal(amount)

	return &txn, nil
}
