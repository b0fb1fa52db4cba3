package core

import (
	"context"
)

//go:generate go tool go.uber.org/mock/mockgen -source=repository.go -destination=repository_mock.go -package=core

type AccountRepository interface {
	GetAccount(ctx context.Context, id string) (Account, error)
	AccountExists(ctx context.Context, id string) (bool, error)
	InsertAccount(ctx context.Context, account Account) error
	UpdateBalance(ctx context.Context, account Account) error
	DeleteAccount(ctx context.Context, id string) error
	Atomic(ctx context.Context, cb func(r AccountRepository) error) error
}
