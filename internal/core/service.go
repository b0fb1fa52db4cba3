package core

import (
	"context"
	"errors"
)

// Service is the ledger: it owns the account registry (through the
// repository) and mediates creation, authentication, money movement and
// deletion. Every operation runs inside a single repository transaction.
type Service struct {
	accountRepository AccountRepository
}

func NewService(accountRepo AccountRepository) Service {
	return Service{
		accountRepository: accountRepo,
	}
}

// CreateAccount registers a new account with a zero balance and freshly
// generated credentials. Candidate ids are drawn until one is unused; the
// id space is large relative to any realistic account count, so the loop
// terminates quickly in practice.
func (s Service) CreateAccount(ctx context.Context) (Account, error) {
	var account Account

	err := s.accountRepository.Atomic(ctx, func(r AccountRepository) error {
		var id string
		for {
			id = newAccountID()
			exists, err := r.AccountExists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				break
			}
		}

		account = Account{
			ID:       id,
			Passcode: newPasscode(),
		}

		return r.InsertAccount(ctx, account)
	})
	if err != nil {
		return Account{}, err
	}

	return account, nil
}

// Authenticate returns the account matching both id and passcode. Unknown
// id and wrong passcode are deliberately indistinguishable.
func (s Service) Authenticate(ctx context.Context, id, passcode string) (Account, error) {
	account, err := s.accountRepository.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Account{}, ErrInvalidLogin
		}
		return Account{}, err
	}

	if account.Passcode != passcode {
		return Account{}, ErrInvalidLogin
	}

	return account, nil
}

func (s Service) Balance(ctx context.Context, id string) (int64, error) {
	account, err := s.accountRepository.GetAccount(ctx, id)
	if err != nil {
		return 0, err
	}

	return account.BalanceCents, nil
}

// Deposit credits the account and returns the new balance.
func (s Service) Deposit(ctx context.Context, id string, amountCents int64) (int64, error) {
	return s.mutateBalance(ctx, id, func(account *Account) error {
		return account.Deposit(amountCents)
	})
}

// Withdraw debits the account and returns the new balance.
func (s Service) Withdraw(ctx context.Context, id string, amountCents int64) (int64, error) {
	return s.mutateBalance(ctx, id, func(account *Account) error {
		return account.Withdraw(amountCents)
	})
}

// Transfer moves amountCents from one account to another. The debit and
// credit happen in one transaction: either both balances change or neither
// does.
func (s Service) Transfer(ctx context.Context, fromID, toID string, amountCents int64) error {
	if fromID == toID {
		return ErrSelfTransfer
	}

	return s.accountRepository.Atomic(ctx, func(r AccountRepository) error {
		from, err := r.GetAccount(ctx, fromID)
		if err != nil {
			return err
		}

		to, err := r.GetAccount(ctx, toID)
		if err != nil {
			return err
		}

		if err = from.Withdraw(amountCents); err != nil {
			return err
		}
		if err = to.Deposit(amountCents); err != nil {
			return err
		}

		if err = r.UpdateBalance(ctx, from); err != nil {
			return err
		}

		return r.UpdateBalance(ctx, to)
	})
}

// RechargePhone debits the account in favour of an external airtime
// destination. The credited phone credit is not modelled as a balance.
func (s Service) RechargePhone(ctx context.Context, id, phoneNumber string, amountCents int64) (int64, error) {
	if !ValidPhoneNumber(phoneNumber) {
		return 0, ErrInvalidPhoneNumber
	}

	return s.Withdraw(ctx, id, amountCents)
}

// DeleteAccount removes the account from the registry. Deleting an id that
// is already gone reports ErrAccountNotFound rather than succeeding
// silently, so double deletion is visible to the caller.
func (s Service) DeleteAccount(ctx context.Context, id string) error {
	return s.accountRepository.Atomic(ctx, func(r AccountRepository) error {
		return r.DeleteAccount(ctx, id)
	})
}

func (s Service) mutateBalance(ctx context.Context, id string, mutate func(*Account) error) (int64, error) {
	var balance int64

	err := s.accountRepository.Atomic(ctx, func(r AccountRepository) error {
		account, err := r.GetAccount(ctx, id)
		if err != nil {
			return err
		}

		if err = mutate(&account); err != nil {
			return err
		}

		if err = r.UpdateBalance(ctx, account); err != nil {
			return err
		}

		balance = account.BalanceCents
		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}
