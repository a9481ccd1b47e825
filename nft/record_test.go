// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft_test

import (
	"bytes"
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

func bigInt(v int64) *big.Int { return big.NewInt(v) }

func newRecord() *nft.AuctionRecord {
	return &nft.AuctionRecord{
		ID:           1,
		StartPrice:   bigInt(100),
		MinIncrement: new(big.Int),
		HighestBid:   new(big.Int),
		Bids:         make([]*nft.BidEntry, 0),
	}
}

func TestBidListStaysSorted(t *testing.T) {
	rec := newRecord()
	count := 100
	for i := 0; i < count; i++ {
		addr := nft.BytesToAddress([]byte(fmt.Sprintf("bidder-%d", rand.Int())))
		rec.SetBid(addr, bigInt(int64(i+1)))
	}
	assert.Equal(t, count, len(rec.Bids))
	for i := 1; i < len(rec.Bids); i++ {
		cmp := bytes.Compare(rec.Bids[i-1].Address.Bytes(), rec.Bids[i].Address.Bytes())
		assert.True(t, cmp < 0, "bid list out of order at %d", i)
	}
}

func TestGetSetBid(t *testing.T) {
	rec := newRecord()
	addr := nft.BytesToAddress([]byte("bidder"))

	assert.Zero(t, rec.GetBid(addr).Sign(), "unknown bidder reads as zero")

	rec.SetBid(addr, bigInt(100))
	assert.Equal(t, int64(100), rec.GetBid(addr).Int64())

	// overwrite, not append
	rec.SetBid(addr, bigInt(120))
	assert.Equal(t, int64(120), rec.GetBid(addr).Int64())
	assert.Equal(t, 1, len(rec.Bids))

	// the returned amount is a copy
	rec.GetBid(addr).SetInt64(0)
	assert.Equal(t, int64(120), rec.GetBid(addr).Int64())
}

func TestLiveTotal(t *testing.T) {
	rec := newRecord()
	rec.SetBid(nft.BytesToAddress([]byte("a")), bigInt(100))
	rec.SetBid(nft.BytesToAddress([]byte("b")), bigInt(110))
	rec.SetBid(nft.BytesToAddress([]byte("c")), new(big.Int))
	assert.Equal(t, int64(210), rec.LiveTotal().Int64())
}

func TestExpired(t *testing.T) {
	rec := newRecord()
	rec.EndTime = 1600
	assert.False(t, rec.Expired(1599))
	assert.True(t, rec.Expired(1600))
	assert.True(t, rec.Expired(1601))
}

func TestHasBids(t *testing.T) {
	rec := newRecord()
	assert.False(t, rec.HasBids())
	rec.HighestBidder = nft.BytesToAddress([]byte("bidder"))
	assert.True(t, rec.HasBids())
}
