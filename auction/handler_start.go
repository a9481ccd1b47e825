// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"time"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Start opens an auction for assetID on behalf of caller. The caller must
// hold the asset and attach a payment equal to exactly 2% of the start
// price (truncating). On success the asset moves into escrow, the fee is
// retained, and the new auction ID is returned. If the custody transfer
// fails the whole operation rolls back, fee included.
func (e *Engine) Start(caller nft.Address, assetID uint64, startPrice, minIncrement *big.Int, duration uint64, payment *big.Int) (id uint64, err error) {
	if err = e.enter(); err != nil {
		return 0, err
	}
	defer e.exit()
	begin := time.Now()
	defer func() {
		if err != nil {
			e.logger.Info("auction start rejected", "caller", caller.AbbrevString(), "asset", assetID, "err", err)
			return
		}
		e.logger.Info("auction start completed", "id", id, "asset", assetID, "elapsed", time.Since(begin))
	}()

	if startPrice == nil || startPrice.Sign() <= 0 {
		return 0, ErrInvalidStartPrice
	}
	if duration == 0 {
		return 0, ErrInvalidDuration
	}
	if minIncrement == nil || minIncrement.Sign() < 0 {
		return 0, ErrInvalidMinIncrement
	}

	holder, err := e.registry.Holder(assetID)
	if err != nil {
		return 0, external(err, "query asset holder")
	}
	if holder != caller {
		return 0, ErrNotAssetHolder
	}

	fee := nft.ListingFee(startPrice)
	if payment == nil || payment.Cmp(fee) != 0 {
		return 0, ErrIncorrectFee
	}

	env := e.newEnv()
	id, err = env.state.NewAuctionID()
	if err != nil {
		return 0, err
	}

	rec := &nft.AuctionRecord{
		ID:           id,
		AssetID:      assetID,
		Seller:       caller,
		StartPrice:   new(big.Int).Set(startPrice),
		MinIncrement: new(big.Int).Set(minIncrement),
		CreateTime:   env.now,
		EndTime:      env.now + duration,
		Active:       true,
		HighestBid:   new(big.Int),
		Bids:         make([]*nft.BidEntry, 0),
	}
	if err = env.state.SetAuction(rec); err != nil {
		return 0, err
	}

	retained, err := env.state.GetRetainedBalance()
	if err != nil {
		return 0, err
	}
	if err = env.state.SetRetainedBalance(retained.Add(retained, fee)); err != nil {
		return 0, err
	}
	if err = env.state.AddTotalReceived(fee); err != nil {
		return 0, err
	}

	env.addTransfer(caller, nft.EscrowAddress, fee)
	env.addEvent(nft.EventAuctionStarted, id, caller, startPrice)

	// effects are staged; custody moves last so a registry failure
	// aborts before anything persists. A commit failure after the move
	// sends the asset back, keeping custody and the record store in step.
	if err = e.registry.Transfer(assetID, caller, nft.EscrowAddress); err != nil {
		return 0, external(err, "transfer asset to escrow")
	}

	if err = env.state.Commit(); err != nil {
		if cerr := e.registry.Transfer(assetID, nft.EscrowAddress, caller); cerr != nil {
			e.logger.Error("asset stranded in escrow after failed commit", "asset", assetID, "err", cerr)
		}
		return 0, err
	}
	e.writeLogs(env)

	auctionsStartedCounter.Inc()
	setRetainedBalanceGauge(retained)
	return id, nil
}
