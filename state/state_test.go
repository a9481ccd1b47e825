// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RonieSteiner/NFT-Auction/lvldb"
	"github.com/RonieSteiner/NFT-Auction/nft"
	"github.com/RonieSteiner/NFT-Auction/state"
)

func newTestStore(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStagedWritesInvisibleUntilCommit(t *testing.T) {
	db := newTestStore(t)
	addr := nft.BytesToAddress([]byte("addr"))

	st := state.New(db)
	assert.Nil(t, st.SetPendingReturn(addr, big.NewInt(42)))
	assert.Nil(t, st.SetRetainedBalance(big.NewInt(7)))

	// staged view sees the writes
	pending, err := st.GetPendingReturn(addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(42), pending.Int64())

	// a fresh view over the same store does not
	other := state.New(db)
	pending, err = other.GetPendingReturn(addr)
	assert.Nil(t, err)
	assert.Zero(t, pending.Sign())

	assert.Nil(t, st.Commit())

	other = state.New(db)
	pending, err = other.GetPendingReturn(addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(42), pending.Int64())
	retained, err := other.GetRetainedBalance()
	assert.Nil(t, err)
	assert.Equal(t, int64(7), retained.Int64())
}

func TestNewAuctionIDMonotone(t *testing.T) {
	db := newTestStore(t)

	st := state.New(db)
	id, err := st.NewAuctionID()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)
	assert.Nil(t, st.Commit())

	// uncommitted assignment does not burn the ID
	st = state.New(db)
	id, err = st.NewAuctionID()
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), id)

	st = state.New(db)
	id, err = st.NewAuctionID()
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), id)
	assert.Nil(t, st.Commit())

	st = state.New(db)
	id, err = st.NewAuctionID()
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), id)
}

func TestAuctionRecordRoundTrip(t *testing.T) {
	db := newTestStore(t)
	seller := nft.BytesToAddress([]byte("seller"))
	bidder := nft.BytesToAddress([]byte("bidder"))

	st := state.New(db)
	rec := &nft.AuctionRecord{
		ID:           1,
		AssetID:      9,
		Seller:       seller,
		StartPrice:   big.NewInt(100),
		MinIncrement: big.NewInt(10),
		CreateTime:   1000,
		EndTime:      1600,
		Active:       true,
		HighestBid:   new(big.Int),
		Bids:         make([]*nft.BidEntry, 0),
	}
	rec.SetBid(bidder, big.NewInt(100))
	rec.HighestBidder = bidder
	rec.HighestBid = big.NewInt(100)
	assert.Nil(t, st.SetAuction(rec))
	assert.Nil(t, st.Commit())

	loaded, err := state.New(db).GetAuction(1)
	assert.Nil(t, err)
	assert.Equal(t, rec.Seller, loaded.Seller)
	assert.Equal(t, rec.EndTime, loaded.EndTime)
	assert.Equal(t, int64(100), loaded.GetBid(bidder).Int64())
	assert.True(t, loaded.Active)

	missing, err := state.New(db).GetAuction(99)
	assert.Nil(t, err)
	assert.Nil(t, missing)
}

func TestAuctionsReturnedInIDOrder(t *testing.T) {
	db := newTestStore(t)
	seller := nft.BytesToAddress([]byte("seller"))

	st := state.New(db)
	for _, id := range []uint64{3, 1, 2} {
		assert.Nil(t, st.SetAuction(&nft.AuctionRecord{
			ID:           id,
			Seller:       seller,
			StartPrice:   big.NewInt(100),
			MinIncrement: new(big.Int),
			HighestBid:   new(big.Int),
		}))
	}
	assert.Nil(t, st.Commit())

	records, err := state.New(db).Auctions()
	assert.Nil(t, err)
	assert.Equal(t, 3, len(records))
	for i, rec := range records {
		assert.Equal(t, uint64(i+1), rec.ID)
	}
}

func TestConservationDelta(t *testing.T) {
	db := newTestStore(t)
	bidder := nft.BytesToAddress([]byte("bidder"))

	st := state.New(db)
	assert.Nil(t, st.AddTotalReceived(big.NewInt(150)))
	assert.Nil(t, st.SetPendingReturn(bidder, big.NewInt(40)))
	assert.Nil(t, st.SetRetainedBalance(big.NewInt(10)))
	rec := &nft.AuctionRecord{
		ID:           1,
		StartPrice:   big.NewInt(100),
		MinIncrement: new(big.Int),
		HighestBid:   big.NewInt(100),
	}
	rec.SetBid(bidder, big.NewInt(100))
	assert.Nil(t, st.SetAuction(rec))
	assert.Nil(t, st.Commit())

	delta, err := state.New(db).ConservationDelta()
	assert.Nil(t, err)
	assert.Zero(t, delta.Sign())

	// paying out without zeroing the liability shows up as a leak
	st = state.New(db)
	assert.Nil(t, st.AddTotalPaid(big.NewInt(40)))
	assert.Nil(t, st.Commit())

	delta, err = state.New(db).ConservationDelta()
	assert.Nil(t, err)
	assert.Equal(t, int64(-40), delta.Int64())

	st = state.New(db)
	assert.Nil(t, st.SetPendingReturn(bidder, new(big.Int)))
	assert.Nil(t, st.Commit())

	delta, err = state.New(db).ConservationDelta()
	assert.Nil(t, err)
	assert.Zero(t, delta.Sign())
}

func TestSettledAuctionLeavesLiveTotal(t *testing.T) {
	db := newTestStore(t)
	bidder := nft.BytesToAddress([]byte("bidder"))

	st := state.New(db)
	rec := &nft.AuctionRecord{
		ID:           1,
		StartPrice:   big.NewInt(100),
		MinIncrement: new(big.Int),
		HighestBid:   big.NewInt(100),
		Settled:      true,
	}
	rec.SetBid(bidder, big.NewInt(100))
	assert.Nil(t, st.SetAuction(rec))
	assert.Nil(t, st.Commit())

	live, err := state.New(db).LiveCommittedTotal()
	assert.Nil(t, err)
	assert.Zero(t, live.Sign(), "settled auctions hold no live funds")
}
