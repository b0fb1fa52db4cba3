package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"minibank/internal/core"
)

//go:generate go tool go.uber.org/mock/mockgen -source=handlers.go -destination=service_mock.go -package=http

type LedgerService interface {
	CreateAccount(ctx context.Context) (core.Account, error)
	Authenticate(ctx context.Context, id, passcode string) (core.Account, error)
	Balance(ctx context.Context, id string) (int64, error)
	Deposit(ctx context.Context, id string, amountCents int64) (int64, error)
	Withdraw(ctx context.Context, id string, amountCents int64) (int64, error)
	Transfer(ctx context.Context, fromID, toID string, amountCents int64) error
	RechargePhone(ctx context.Context, id, phoneNumber string, amountCents int64) (int64, error)
	DeleteAccount(ctx context.Context, id string) error
}

type Handler struct {
	ledger   LedgerService
	tokens   TokenManager
	validate *validator.Validate
	logger   core.Logger
}

func NewHandler(ledger LedgerService, tokens TokenManager, logger core.Logger) Handler {
	return Handler{
		ledger:   ledger,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h Handler) PostAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.ledger.CreateAccount(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create account", "error", err)
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	h.writeJSON(ctx, w, http.StatusCreated, CreateAccountResponse{
		AccountID: account.ID,
		Passcode:  account.Passcode,
	})
}

func (h Handler) PostSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, err := h.ledger.Authenticate(ctx, req.AccountID, req.Passcode)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to issue session token", "error", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, LoginResponse{
		Token:     token,
		AccountID: account.ID,
		Balance:   FormatCents(account.BalanceCents),
	})
}

func (h Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	balance, err := h.ledger.Balance(ctx, accountID)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Balance:   FormatCents(balance),
	})
}

func (h Handler) PostDeposits(w http.ResponseWriter, r *http.Request) {
	h.postBalanceMutation(w, r, h.ledger.Deposit)
}

func (h Handler) PostWithdrawals(w http.ResponseWriter, r *http.Request) {
	h.postBalanceMutation(w, r, h.ledger.Withdraw)
}

func (h Handler) postBalanceMutation(
	w http.ResponseWriter,
	r *http.Request,
	mutate func(ctx context.Context, id string, amountCents int64) (int64, error),
) {
	ctx := r.Context()

	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var req AmountRequest
	if !h.decode(w, r, &req) {
		return
	}

	amountCents, err := ParseAmountToCents(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	balance, err := mutate(ctx, accountID, amountCents)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Balance:   FormatCents(balance),
	})
}

func (h Handler) PostTransfers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var req TransferRequest
	if !h.decode(w, r, &req) {
		return
	}

	amountCents, err := ParseAmountToCents(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ledger.Transfer(ctx, accountID, req.RecipientID, amountCents); err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h Handler) PostRecharges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var req RechargeRequest
	if !h.decode(w, r, &req) {
		return
	}

	amountCents, err := ParseAmountToCents(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	balance, err := h.ledger.RechargePhone(ctx, accountID, req.PhoneNumber, amountCents)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Balance:   FormatCents(balance),
	})
}

func (h Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	if err := h.ledger.DeleteAccount(ctx, accountID); err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h Handler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

func (h Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

func (h Handler) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidPhoneNumber),
		errors.Is(err, core.ErrSelfTransfer):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrInvalidLogin):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, "Unexpected ledger error", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
