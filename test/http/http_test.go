package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minibank/internal/core"
	httpapi "minibank/internal/http"
	"minibank/internal/sqlite"
)

// newTestRouter assembles the full stack against a fresh database: real
// store, real ledger service, real session tokens.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	client, err := sqlite.NewClient(sqlite.Config{
		DatabasePath: filepath.Join(t.TempDir(), "e2e_minibank.db"),
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  30 * time.Second,
		EnableWAL:    true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, sqlite.Migrate(context.Background(), client.DB()))

	store := sqlite.NewAccountStore(client.DB())
	service := core.NewService(store)
	tokens := httpapi.NewTokenManager(httpapi.AuthConfig{Secret: "e2e-secret", TokenTTL: time.Minute})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httpapi.NewHandler(service, tokens, logger)

	return httpapi.NewRouter(handler, tokens)
}

func do(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createAccount(t *testing.T, router http.Handler) httpapi.CreateAccountResponse {
	t.Helper()

	w := do(t, router, http.MethodPost, "/accounts", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, "create account failed: %s", w.Body.String())

	var resp httpapi.CreateAccountResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func login(t *testing.T, router http.Handler, accountID, passcode string) httpapi.LoginResponse {
	t.Helper()

	w := do(t, router, http.MethodPost, "/sessions", "", httpapi.LoginRequest{
		AccountID: accountID,
		Passcode:  passcode,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp httpapi.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func getBalance(t *testing.T, router http.Handler, token string) string {
	t.Helper()

	w := do(t, router, http.MethodGet, "/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "get balance failed: %s", w.Body.String())

	var resp httpapi.BalanceResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Balance
}

func TestLedger_E2E_TransferHappyPath(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	accountA := createAccount(t, router)
	accountB := createAccount(t, router)
	require.NotEqual(t, accountA.AccountID, accountB.AccountID)

	sessionA := login(t, router, accountA.AccountID, accountA.Passcode)
	sessionB := login(t, router, accountB.AccountID, accountB.Passcode)

	w := do(t, router, http.MethodPost, "/deposits", sessionA.Token, httpapi.AmountRequest{Amount: "1000"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/deposits", sessionB.Token, httpapi.AmountRequest{Amount: "500"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/transfers", sessionA.Token, httpapi.TransferRequest{
		RecipientID: accountB.AccountID,
		Amount:      "200",
	})
	require.Equal(t, http.StatusCreated, w.Code, "transfer failed: %s", w.Body.String())

	require.Equal(t, "800.00", getBalance(t, router, sessionA.Token))
	require.Equal(t, "700.00", getBalance(t, router, sessionB.Token))
}

func TestLedger_E2E_OverdraftLeavesBalanceUnchanged(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	account := createAccount(t, router)
	session := login(t, router, account.AccountID, account.Passcode)

	w := do(t, router, http.MethodPost, "/deposits", session.Token, httpapi.AmountRequest{Amount: "1000"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/withdrawals", session.Token, httpapi.AmountRequest{Amount: "2000"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.Equal(t, "1000.00", getBalance(t, router, session.Token))
}

func TestLedger_E2E_SelfTransferRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	account := createAccount(t, router)
	session := login(t, router, account.AccountID, account.Passcode)

	w := do(t, router, http.MethodPost, "/deposits", session.Token, httpapi.AmountRequest{Amount: "100"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/transfers", session.Token, httpapi.TransferRequest{
		RecipientID: account.AccountID,
		Amount:      "50",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, "100.00", getBalance(t, router, session.Token))
}

func TestLedger_E2E_Recharge(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	account := createAccount(t, router)
	session := login(t, router, account.AccountID, account.Passcode)

	w := do(t, router, http.MethodPost, "/deposits", session.Token, httpapi.AmountRequest{Amount: "1000"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/recharges", session.Token, httpapi.RechargeRequest{
		PhoneNumber: "77123456",
		Amount:      "100",
	})
	require.Equal(t, http.StatusOK, w.Code, "recharge failed: %s", w.Body.String())

	var resp httpapi.BalanceResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "900.00", resp.Balance)

	w = do(t, router, http.MethodPost, "/recharges", session.Token, httpapi.RechargeRequest{
		PhoneNumber: "66123456",
		Amount:      "100",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, "900.00", getBalance(t, router, session.Token))
}

func TestLedger_E2E_WrongPasscodeRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	account := createAccount(t, router)

	w := do(t, router, http.MethodPost, "/sessions", "", httpapi.LoginRequest{
		AccountID: account.AccountID,
		Passcode:  "0000",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedger_E2E_DeleteAccount(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	account := createAccount(t, router)
	session := login(t, router, account.AccountID, account.Passcode)

	w := do(t, router, http.MethodDelete, "/accounts/me", session.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the session still verifies, but its subject no longer resolves
	w = do(t, router, http.MethodGet, "/balance", session.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// double deletion is an explicit error, not a silent no-op
	w = do(t, router, http.MethodDelete, "/accounts/me", session.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/sessions", "", httpapi.LoginRequest{
		AccountID: account.AccountID,
		Passcode:  account.Passcode,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedger_E2E_UnauthenticatedOperationRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/deposits", "", httpapi.AmountRequest{Amount: "100"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
