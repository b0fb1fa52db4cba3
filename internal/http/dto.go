package http

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
	Passcode  string `json:"passcode"`
}

type LoginRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	Passcode  string `json:"passcode" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type TransferRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
}

type RechargeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
}

// ParseAmountToCents converts a decimal amount string into integer cents.
// At most two fractional digits are accepted; parsing is exact, so "0.10"
// is always 10 cents.
func ParseAmountToCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format: %w", err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount cannot have more than two decimal places")
	}

	cents := d.Shift(2)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount is too large")
	}

	return cents.IntPart(), nil
}

// FormatCents renders integer cents as a display amount with two decimal
// places.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
