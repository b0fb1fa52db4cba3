package core

import (
	"errors"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidLogin       = errors.New("wrong account id or passcode")
	ErrInvalidPhoneNumber = errors.New("phone number must be 8 digits starting with 77 or 17")
	ErrSelfTransfer       = errors.New("cannot transfer to the same account")
	ErrAccountNotFound    = errors.New("account not found")
)
