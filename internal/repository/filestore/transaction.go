package filestore

import (
	"context"
	"sync"

	"branchwrite/internal/domain/repositories"
)

// TransactionManager serializes every store operation behind one mutex.
// One instance is shared by all services of a process.
type TransactionManager struct {
	mu sync.Mutex
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

// ExecTx runs fn while holding the store lock.
// Not reentrant: fn must not call ExecTx again.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(ctx)
}
