// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import "math/big"

// Event names emitted by the auction engine.
const (
	EventAuctionStarted = "AuctionStarted"
	EventAuctionBid     = "AuctionBid"
	EventAuctionEnded   = "AuctionEnded"
	EventFundsWithdrawn = "FundsWithdrawn"
)

// Event is an observable notification produced by a committed operation.
// For AuctionEnded, Address carries the winner (zero if none) and Amount
// the final bid. For FundsWithdrawn, AuctionID is zero.
type Event struct {
	Name      string
	AuctionID uint64
	Address   Address
	Amount    *big.Int
	Timestamp uint64
}

// Events slice of events.
type Events []*Event

// Transfer records a single outward fund movement settled by the engine.
type Transfer struct {
	Sender    Address
	Recipient Address
	Amount    *big.Int
	Timestamp uint64
}

// Transfers slice of transfer logs.
type Transfers []*Transfer
