package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists postings in PostgreSQL ensuring double-entry balance.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// EnsureAccount guarantees an account exists for the provided code.
func (l *PostgresLedger) EnsureAccount(ctx context.Context, code string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO accounts (id, code) VALUES ($1, $2)
        ON CONFLICT (code) DO NOTHING`, uuid.New(), code)
	return err
}

// Balance returns the summed balance for the specified account code. Unknown
// accounts read as zero.
func (l *PostgresLedger) Balance(ctx context.Context, code string) (int64, error) {
	const query = `
        SELECT COALESCE(SUM(e.amount), 0)
        FROM entries e
        INNER JOIN accounts a ON a.id = e.account_id
        WHERE a.code = $1`
	var balance int64
	if err := l.db.QueryRow(ctx, query, code).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// Deposit credits the user's available account out of the settlement account.
func (l *PostgresLedger) Deposit(ctx context.Context, userID, clientTxID string, amount int64) (PostingResult, error) {
	return l.post(ctx, kindDeposit, SettlementAccountCode, AvailableAccountCode(userID), clientTxID, amount, false)
}

// Withdraw debits the user's available account into the settlement account.
func (l *PostgresLedger) Withdraw(ctx context.Context, userID, clientTxID string, amount int64) (PostingResult, error) {
	return l.post(ctx, kindWithdraw, AvailableAccountCode(userID), SettlementAccountCode, clientTxID, amount, true)
}

// SumByPrefix totals all accounts whose code starts with prefix.
func (l *PostgresLedger) SumByPrefix(ctx context.Context, prefix string) (int64, error) {
	const query = `
        SELECT COALESCE(SUM(e.amount), 0)
        FROM entries e
        INNER JOIN accounts a ON a.id = e.account_id
        WHERE a.code LIKE $1 || '%'`
	var total int64
	if err := l.db.QueryRow(ctx, query, prefix).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// CountPositiveByPrefix counts accounts under prefix with a positive balance.
func (l *PostgresLedger) CountPositiveByPrefix(ctx context.Context, prefix string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM (
            SELECT a.id
            FROM entries e
            INNER JOIN accounts a ON a.id = e.account_id
            WHERE a.code LIKE $1 || '%'
            GROUP BY a.id
            HAVING SUM(e.amount) > 0
        ) positive`
	var count int
	if err := l.db.QueryRow(ctx, query, prefix).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// post records a balanced two-entry posting, enforcing idempotency on
// (kind, clientTxID) and, when checkFunds is set, a non-negative source.
func (l *PostgresLedger) post(ctx context.Context, kind, fromCode, toCode, clientTxID string, amount int64, checkFunds bool) (PostingResult, error) {
	if amount <= 0 {
		return PostingResult{}, fmt.Errorf("amount must be positive")
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PostingResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	fromAccountID, err := ensureAccountTx(ctx, tx, fromCode)
	if err != nil {
		return PostingResult{}, err
	}
	toAccountID, err := ensureAccountTx(ctx, tx, toCode)
	if err != nil {
		return PostingResult{}, err
	}

	// The user-facing account is the one whose balance goes back to callers.
	userAccountID := toAccountID
	if checkFunds {
		userAccountID = fromAccountID
	}

	const existingQuery = `SELECT id FROM postings WHERE client_tx_id = $1 AND kind = $2`
	var existingID uuid.UUID
	if err := tx.QueryRow(ctx, existingQuery, clientTxID, kind).Scan(&existingID); err == nil {
		bal, balErr := balanceForAccount(ctx, tx, userAccountID)
		if balErr != nil {
			return PostingResult{}, balErr
		}
		return PostingResult{PostingID: existingID.String(), AvailableBalance: bal}, ErrDuplicateTransaction
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return PostingResult{}, err
	}

	if checkFunds {
		fromBalance, err := balanceForAccount(ctx, tx, fromAccountID)
		if err != nil {
			return PostingResult{}, err
		}
		if fromBalance < amount {
			return PostingResult{}, ErrInsufficientFunds
		}
	}

	postingID := uuid.New()
	if _, err := tx.Exec(ctx, `INSERT INTO postings (id, client_tx_id, kind) VALUES ($1, $2, $3)`, postingID, clientTxID, kind); err != nil {
		return PostingResult{}, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO entries (id, posting_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), postingID, fromAccountID, -amount); err != nil {
		return PostingResult{}, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO entries (id, posting_id, account_id, amount) VALUES ($1, $2, $3, $4)`, uuid.New(), postingID, toAccountID, amount); err != nil {
		return PostingResult{}, err
	}

	balance, err := balanceForAccount(ctx, tx, userAccountID)
	if err != nil {
		return PostingResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return PostingResult{}, err
	}

	return PostingResult{PostingID: postingID.String(), AvailableBalance: balance}, nil
}

func ensureAccountTx(ctx context.Context, tx pgx.Tx, code string) (uuid.UUID, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO accounts (id, code) VALUES ($1, $2)
        ON CONFLICT (code) DO NOTHING`, uuid.New(), code); err != nil {
		return uuid.Nil, err
	}
	const query = `SELECT id FROM accounts WHERE code = $1 FOR UPDATE`
	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, code).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("account %s: %w", code, err)
	}
	return id, nil
}

func balanceForAccount(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM entries WHERE account_id = $1`
	var balance int64
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}
