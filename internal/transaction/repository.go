package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no transaction matches the lookup.
var ErrNotFound = errors.New("transaction not found")

// Repository persists fund-movement requests.
type Repository interface {
	Create(ctx context.Context, tx Transaction) error
	Get(ctx context.Context, id string) (Transaction, error)
	ListPending(ctx context.Context, txType string) ([]Transaction, error)
	CountPending(ctx context.Context) (int, error)
	SetStatus(ctx context.Context, id, status string, decidedAt time.Time) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed transaction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const txColumns = `id, user_id, tx_type, amount, status, created_at, decided_at`

// Create inserts a new pending transaction.
func (r *PostgresRepository) Create(ctx context.Context, tx Transaction) error {
	txID, err := uuid.Parse(tx.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(tx.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transactions (`+txColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txID, userID, tx.Type, tx.Amount, tx.Status, tx.CreatedAt.UTC(), tx.DecidedAt)
	return err
}

// Get fetches a transaction by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return Transaction{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, txID)
	return scanTransaction(row)
}

// ListPending returns pending transactions of one type, oldest first.
func (r *PostgresRepository) ListPending(ctx context.Context, txType string) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT `+txColumns+` FROM transactions
        WHERE status = $1 AND tx_type = $2 ORDER BY created_at ASC`, StatusPending, txType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// CountPending counts pending transactions of both types.
func (r *PostgresRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE status = $1`, StatusPending).Scan(&count)
	return count, err
}

// SetStatus records an admin decision. Only pending transactions move.
func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string, decidedAt time.Time) error {
	txID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE transactions SET status = $1, decided_at = $2
        WHERE id = $3 AND status = $4`, status, decidedAt.UTC(), txID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		id, userID uuid.UUID
		created    time.Time
		decided    *time.Time
		tx         Transaction
	)
	if err := row.Scan(&id, &userID, &tx.Type, &tx.Amount, &tx.Status, &created, &decided); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	tx.ID = id.String()
	tx.UserID = userID.String()
	tx.CreatedAt = created.UTC()
	if decided != nil {
		t := decided.UTC()
		tx.DecidedAt = &t
	}
	return tx, nil
}
