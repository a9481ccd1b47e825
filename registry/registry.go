// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry provides in-memory implementations of the engine's
// external collaborators, used by tests and local runs. A production
// deployment substitutes adapters to the real custody and payment
// systems.
package registry

import (
	"fmt"
	"sync"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Memory is an in-memory asset registry.
type Memory struct {
	mu      sync.Mutex
	holders map[uint64]nft.Address
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{holders: make(map[uint64]nft.Address)}
}

// SetHolder seeds custody of an asset.
func (m *Memory) SetHolder(assetID uint64, holder nft.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holders[assetID] = holder
}

// Holder returns the current holder of assetID.
func (m *Memory) Holder(assetID uint64) (nft.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	holder, ok := m.holders[assetID]
	if !ok {
		return nft.Address{}, fmt.Errorf("unknown asset %d", assetID)
	}
	return holder, nil
}

// Transfer moves custody of assetID from one holder to another. Fails
// with no effect unless from currently holds the asset.
func (m *Memory) Transfer(assetID uint64, from, to nft.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	holder, ok := m.holders[assetID]
	if !ok {
		return fmt.Errorf("unknown asset %d", assetID)
	}
	if holder != from {
		return fmt.Errorf("asset %d not held by %v", assetID, from)
	}
	m.holders[assetID] = to
	return nil
}
