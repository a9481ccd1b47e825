// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Event represents an engine event as stored in db.
type Event struct {
	Seq       uint64
	Timestamp uint64
	Name      string
	AuctionID uint64
	Address   nft.Address
	Amount    *big.Int
}

// Transfer represents a fund movement as stored in db.
type Transfer struct {
	Seq       uint64
	Timestamp uint64
	Sender    nft.Address
	Recipient nft.Address
	Amount    *big.Int
}

// Order for filtered queries.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range selects rows by timestamp, inclusive.
type Range struct {
	From uint64
	To   uint64
}

// Options paging options.
type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter filters events. Zero-valued criteria are ignored.
type EventFilter struct {
	Name      string
	AuctionID *uint64
	Address   *nft.Address
	Range     *Range
	Order     Order
	Options   *Options
}

// TransferFilter filters transfers. Nil criteria are ignored.
type TransferFilter struct {
	Sender    *nft.Address
	Recipient *nft.Address
	Range     *Range
	Order     Order
	Options   *Options
}
