// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/RonieSteiner/NFT-Auction/nft"
	"github.com/RonieSteiner/NFT-Auction/state"
)

// env carries the per-operation staged state plus the events and
// transfers the operation will emit once committed.
type env struct {
	state     *state.State
	now       uint64
	events    nft.Events
	transfers nft.Transfers
}

func (e *Engine) newEnv() *env {
	return &env{
		state:     state.New(e.store),
		now:       e.now(),
		events:    make(nft.Events, 0),
		transfers: make(nft.Transfers, 0),
	}
}

func (env *env) addEvent(name string, auctionID uint64, addr nft.Address, amount *big.Int) {
	env.events = append(env.events, &nft.Event{
		Name:      name,
		AuctionID: auctionID,
		Address:   addr,
		Amount:    new(big.Int).Set(amount),
		Timestamp: env.now,
	})
}

func (env *env) addTransfer(sender, recipient nft.Address, amount *big.Int) {
	env.transfers = append(env.transfers, &nft.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Timestamp: env.now,
	})
}
