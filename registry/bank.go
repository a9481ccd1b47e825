// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"sync"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Bank is an in-memory payment sink that accumulates payouts per address.
type Bank struct {
	mu       sync.Mutex
	balances map[nft.Address]*big.Int
}

// NewBank creates an empty in-memory bank.
func NewBank() *Bank {
	return &Bank{balances: make(map[nft.Address]*big.Int)}
}

// Pay credits amount to the given address.
func (b *Bank) Pay(to nft.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	balance, ok := b.balances[to]
	if !ok {
		balance = new(big.Int)
		b.balances[to] = balance
	}
	balance.Add(balance, amount)
	return nil
}

// BalanceOf returns the total paid to addr so far.
func (b *Bank) BalanceOf(addr nft.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	balance, ok := b.balances[addr]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(balance)
}
