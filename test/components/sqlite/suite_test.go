package integration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minibank/internal/sqlite"
)

type TestSuite struct {
	DB       *sql.DB
	Client   *sqlite.Client
	teardown func()
}

func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_minibank.db")

	config := sqlite.Config{
		DatabasePath: dbPath,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  30 * time.Second,
		EnableWAL:    true,
	}

	client, err := sqlite.NewClient(config)
	require.NoError(t, err, "failed to create test client")

	err = sqlite.Migrate(context.Background(), client.DB())
	require.NoError(t, err, "failed to create schema")

	suite := &TestSuite{
		DB:     client.DB(),
		Client: client,
		teardown: func() {
			client.Close()
		},
	}

	return suite
}

func (s *TestSuite) Teardown() {
	s.teardown()
}

func (s *TestSuite) SeedAccount(t *testing.T, id, passcode string, balanceCents int64) {
	t.Helper()

	query := `
		INSERT INTO accounts (id, passcode, balance_cents)
		VALUES (?, ?, ?)
	`

	_, err := s.DB.Exec(query, id, passcode, balanceCents)
	require.NoError(t, err, "failed to seed account")
}

func (s *TestSuite) GetBalance(t *testing.T, id string) int64 {
	t.Helper()

	var balance int64
	err := s.DB.QueryRow("SELECT balance_cents FROM accounts WHERE id = ?", id).Scan(&balance)
	require.NoError(t, err, "failed to get account balance")

	return balance
}

func (s *TestSuite) CountAccounts(t *testing.T) int {
	t.Helper()

	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count)
	require.NoError(t, err, "failed to count accounts")

	return count
}
