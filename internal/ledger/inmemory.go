package ledger

import (
	"context"
	"strings"
	"sync"
)

type inMemoryLedger struct {
	mu       sync.RWMutex
	balances map[string]int64
	postings map[string]PostingResult
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit
// tests and dev mode.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		balances: map[string]int64{SettlementAccountCode: 0},
		postings: make(map[string]PostingResult),
	}
}

func (l *inMemoryLedger) EnsureAccount(_ context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[code]; !exists {
		l.balances[code] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, code string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[code], nil
}

func (l *inMemoryLedger) Deposit(_ context.Context, userID, clientTxID string, amount int64) (PostingResult, error) {
	if amount <= 0 {
		return PostingResult{}, ErrInsufficientFunds
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := kindDeposit + ":" + clientTxID
	if res, exists := l.postings[key]; exists {
		return res, ErrDuplicateTransaction
	}

	code := AvailableAccountCode(userID)
	l.balances[code] += amount
	l.balances[SettlementAccountCode] -= amount

	res := PostingResult{PostingID: key, AvailableBalance: l.balances[code]}
	l.postings[key] = res
	return res, nil
}

func (l *inMemoryLedger) Withdraw(_ context.Context, userID, clientTxID string, amount int64) (PostingResult, error) {
	if amount <= 0 {
		return PostingResult{}, ErrInsufficientFunds
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := kindWithdraw + ":" + clientTxID
	if res, exists := l.postings[key]; exists {
		return res, ErrDuplicateTransaction
	}

	code := AvailableAccountCode(userID)
	if l.balances[code] < amount {
		return PostingResult{}, ErrInsufficientFunds
	}

	l.balances[code] -= amount
	l.balances[SettlementAccountCode] += amount

	res := PostingResult{PostingID: key, AvailableBalance: l.balances[code]}
	l.postings[key] = res
	return res, nil
}

func (l *inMemoryLedger) SumByPrefix(_ context.Context, prefix string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var total int64
	for code, balance := range l.balances {
		if strings.HasPrefix(code, prefix) {
			total += balance
		}
	}
	return total, nil
}

func (l *inMemoryLedger) CountPositiveByPrefix(_ context.Context, prefix string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	count := 0
	for code, balance := range l.balances {
		if strings.HasPrefix(code, prefix) && balance > 0 {
			count++
		}
	}
	return count, nil
}
