package repositories

import "context"

// TxFn is a unit of store work run under the store-wide lock
type TxFn func(ctx context.Context) error

// TransactionManager serializes store operations.
//
// There is no rollback: a failing TxFn leaves whatever files it already
// wrote on disk. The guarantee is mutual exclusion within one process only.
type TransactionManager interface {
	// ExecTx runs fn while holding the store lock
	ExecTx(ctx context.Context, fn TxFn) error
}
