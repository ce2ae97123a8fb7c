package database

import (
	"context"
	"errors"
)

// ErrConflict marks a transaction that lost a race with a concurrent writer.
var ErrConflict = errors.New("transaction conflict")

// Transactor runs fn in a single store transaction. Repositories called with
// the ctx handed to fn join that transaction. Nested calls reuse the outer
// transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
