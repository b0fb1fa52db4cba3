package core

import "math"

// Account is a single ledger account. Balances are held in integer minor
// units (cents) to avoid floating-point drift.
type Account struct {
	ID           string
	Passcode     string
	BalanceCents int64
}

func (a *Account) HasSufficientFunds(amountCents int64) bool {
	return a.BalanceCents >= amountCents
}

// Deposit credits the account. The amount must be strictly positive and
// must not push the balance past the int64 range.
func (a *Account) Deposit(amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if amountCents > math.MaxInt64-a.BalanceCents {
		return ErrInvalidAmount
	}

	a.BalanceCents += amountCents
	return nil
}

// Withdraw debits the account, keeping the balance non-negative.
func (a *Account) Withdraw(amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if !a.HasSufficientFunds(amountCents) {
		return ErrInsufficientFunds
	}

	a.BalanceCents -= amountCents
	return nil
}

// ValidPhoneNumber reports whether s is a valid recharge destination:
// exactly 8 digits starting with the domestic mobile prefix 77 or 17.
func ValidPhoneNumber(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[:2] == "77" || s[:2] == "17"
}
