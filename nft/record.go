// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// BidEntry holds the live cumulative amount a bidder has committed to one
// auction. When a bidder is displaced as highest bidder, the displaced
// amount moves to the pending-returns ledger and the entry drops to zero.
type BidEntry struct {
	Address Address
	Amount  *big.Int
}

func (b *BidEntry) ToString() string {
	return fmt.Sprintf("BidEntry(addr=%v, amount=%v)", b.Address.AbbrevString(), b.Amount.String())
}

// AuctionRecord is the full state of one auction. A record is created
// exactly once by the start operation, mutated by bids while it accepts
// them, settled exactly once, and kept forever for audit.
//
// Active turns false either on explicit settlement or as a side effect of
// a bid accepted at/after EndTime. Settled turns true only on settlement;
// a record with Active=false and Settled=false is closed to bids but
// still awaiting its settlement call.
type AuctionRecord struct {
	ID            uint64
	AssetID       uint64
	Seller        Address
	StartPrice    *big.Int
	MinIncrement  *big.Int
	CreateTime    uint64
	EndTime       uint64
	Active        bool
	Settled       bool
	HighestBidder Address // zero until the first accepted bid
	HighestBid    *big.Int
	Bids          []*BidEntry // sorted by address
}

func (r *AuctionRecord) indexOf(addr Address) (int, int) {
	// return values:
	//     first parameter: if found, the index of the item
	//     second parameter: if not found, the correct insert index of the item
	if len(r.Bids) <= 0 {
		return -1, 0
	}
	l := 0
	h := len(r.Bids)
	for l < h {
		m := (l + h) / 2
		cmp := bytes.Compare(addr.Bytes(), r.Bids[m].Address.Bytes())
		if cmp < 0 {
			h = m
		} else if cmp > 0 {
			l = m + 1
		} else {
			return m, -1
		}
	}
	return -1, h
}

// GetBid returns the live committed amount for addr, zero if absent.
func (r *AuctionRecord) GetBid(addr Address) *big.Int {
	index, _ := r.indexOf(addr)
	if index < 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(r.Bids[index].Amount)
}

// SetBid stores the live committed amount for addr, keeping the list
// sorted by address.
func (r *AuctionRecord) SetBid(addr Address, amount *big.Int) {
	index, insertIndex := r.indexOf(addr)
	if index >= 0 {
		r.Bids[index].Amount = amount
		return
	}
	entry := &BidEntry{Address: addr, Amount: amount}
	if len(r.Bids) == 0 {
		r.Bids = append(r.Bids, entry)
		return
	}
	newList := make([]*BidEntry, insertIndex)
	copy(newList, r.Bids[:insertIndex])
	newList = append(newList, entry)
	newList = append(newList, r.Bids[insertIndex:]...)
	r.Bids = newList
}

// HasBids reports whether any bid has ever been accepted.
func (r *AuctionRecord) HasBids() bool {
	return !r.HighestBidder.IsZero()
}

// Expired reports whether now is at/after the auction end time.
func (r *AuctionRecord) Expired(now uint64) bool {
	return now >= r.EndTime
}

// LiveTotal is the sum of all live committed amounts held by the engine
// against this auction.
func (r *AuctionRecord) LiveTotal() *big.Int {
	total := new(big.Int)
	for _, b := range r.Bids {
		total.Add(total, b.Amount)
	}
	return total
}

func (r *AuctionRecord) ToString() string {
	s := []string{fmt.Sprintf("AuctionRecord(ID=%v, AssetID=%v, Seller=%v, StartPrice=%v, MinIncrement=%v, EndTime=%v, Active=%v, Settled=%v, HighestBidder=%v, HighestBid=%v)",
		r.ID, r.AssetID, r.Seller.AbbrevString(), r.StartPrice.String(), r.MinIncrement.String(), fmt.Sprintln(time.Unix(int64(r.EndTime), 0)), r.Active, r.Settled, r.HighestBidder.AbbrevString(), r.HighestBid.String())}
	for i, b := range r.Bids {
		s = append(s, fmt.Sprintf("  %d.%v", i, b.ToString()))
	}
	return strings.Join(s, "\n")
}

func (r *AuctionRecord) String() string {
	return r.ToString()
}
