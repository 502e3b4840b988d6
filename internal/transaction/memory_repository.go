package transaction

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for dev mode and tests.
type MemoryRepository struct {
	mu  sync.RWMutex
	txs map[string]Transaction
}

// NewMemoryRepository builds an empty in-memory transaction repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{txs: make(map[string]Transaction)}
}

func (r *MemoryRepository) Create(_ context.Context, tx Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID] = tx
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[id]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (r *MemoryRepository) ListPending(_ context.Context, txType string) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var txs []Transaction
	for _, tx := range r.txs {
		if tx.Status == StatusPending && tx.Type == txType {
			txs = append(txs, tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
	return txs, nil
}

func (r *MemoryRepository) CountPending(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, tx := range r.txs {
		if tx.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) SetStatus(_ context.Context, id, status string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.Status != StatusPending {
		return ErrNotFound
	}
	tx.Status = status
	t := decidedAt.UTC()
	tx.DecidedAt = &t
	r.txs[id] = tx
	return nil
}
