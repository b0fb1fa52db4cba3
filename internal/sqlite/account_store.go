package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minibank/internal/core"
)

// executor is the subset of *sql.DB and *sql.Tx the store needs, so reads
// like authentication can run outside an explicit transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type AccountStore struct {
	db *sql.DB
	tx *sql.Tx
}

func NewAccountStore(db *sql.DB) AccountStore {
	return AccountStore{
		db: db,
	}
}

func (s AccountStore) conn() executor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s AccountStore) GetAccount(ctx context.Context, id string) (core.Account, error) {
	query := `
		SELECT id, passcode, balance_cents
		FROM accounts
		WHERE id = ?
	`

	var account core.Account
	err := s.conn().QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Passcode,
		&account.BalanceCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Account{}, core.ErrAccountNotFound
		}

		return core.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

func (s AccountStore) AccountExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`

	var exists bool
	if err := s.conn().QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

func (s AccountStore) InsertAccount(ctx context.Context, account core.Account) error {
	query := `
		INSERT INTO accounts (id, passcode, balance_cents)
		VALUES (?, ?, ?)
	`

	_, err := s.conn().ExecContext(ctx, query, account.ID, account.Passcode, account.BalanceCents)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

func (s AccountStore) UpdateBalance(ctx context.Context, account core.Account) error {
	query := `
		UPDATE accounts
		SET balance_cents = ?
		WHERE id = ?
	`

	result, err := s.conn().ExecContext(ctx, query, account.BalanceCents, account.ID)
	if err != nil {
		return fmt.Errorf("failed to execute update: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return core.ErrAccountNotFound
	}

	return nil
}

func (s AccountStore) DeleteAccount(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = ?`

	result, err := s.conn().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return core.ErrAccountNotFound
	}

	return nil
}

func (s AccountStore) Atomic(ctx context.Context, cb func(core.AccountRepository) error) error {
	// SQLite doesn't support SELECT FOR UPDATE; BEGIN IMMEDIATE (configured
	// via _txlock=immediate in the DSN) acquires a RESERVED lock up front,
	// serializing write transactions with no race window between the SELECT
	// and the UPDATE.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelDefault,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := AccountStore{
		tx: tx,
	}

	if err = cb(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
