// Package wallet defines the external spendable-funds substrate.
//
// Patron never holds spendable balances itself: purchases, tips and
// subscription payments debit the payer's wallet, and withdrawals credit
// the recipient's wallet. The interface is the seam to whatever custody
// system the host application uses; Memory is the in-process
// implementation for tests and development.
package wallet

import (
	"context"
	"errors"
	"sync"

	"github.com/xraph/patron/types"
)

// ErrInsufficientFunds is returned by Debit when the principal's balance
// cannot cover the amount.
var ErrInsufficientFunds = errors.New("wallet: insufficient funds")

// Wallet is the spendable-funds substrate.
type Wallet interface {
	Balance(ctx context.Context, principal string) (types.Money, error)
	// Debit removes amount from the principal's balance, failing with
	// ErrInsufficientFunds without partial effect.
	Debit(ctx context.Context, principal string, amount types.Money) error
	Credit(ctx context.Context, principal string, amount types.Money) error
}

// Memory is an in-process Wallet keyed by principal.
type Memory struct {
	mu       sync.RWMutex
	currency string
	balances map[string]int64
}

// NewMemory creates an empty in-memory wallet in the given currency.
func NewMemory(currency string) *Memory {
	return &Memory{
		currency: currency,
		balances: make(map[string]int64),
	}
}

// Deposit adds funds to a principal. Test/dev convenience, not part of the
// Wallet interface.
func (m *Memory) Deposit(principal string, amount types.Money) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[principal] += amount.Amount
}

func (m *Memory) Balance(_ context.Context, principal string) (types.Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return types.New(m.balances[principal], m.currency), nil
}

func (m *Memory) Debit(_ context.Context, principal string, amount types.Money) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balances[principal] < amount.Amount {
		return ErrInsufficientFunds
	}
	m.balances[principal] -= amount.Amount
	return nil
}

func (m *Memory) Credit(_ context.Context, principal string, amount types.Money) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[principal] += amount.Amount
	return nil
}
