// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"time"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Bid applies bidder's attached payment to auctionID. Payments are
// cumulative: the new bid is the bidder's live committed amount plus the
// payment, and must reach the start price and clear the highest bid by
// the minimum increment. A rejected bid takes no payment and changes no
// state.
//
// On acceptance, a displaced highest bidder's full committed amount moves
// to their pending return and their live amount drops to zero; a later
// bid of theirs therefore starts from scratch while the displaced funds
// stay claimable. A highest bidder topping up their own bid displaces
// nothing. If the acceptance lands at/after the end time, the auction
// stops accepting bids; settlement still needs an explicit End call.
func (e *Engine) Bid(auctionID uint64, bidder nft.Address, payment *big.Int) (err error) {
	if err = e.enter(); err != nil {
		return err
	}
	defer e.exit()
	begin := time.Now()
	defer func() {
		if err != nil {
			bidsRejectedCounter.Inc()
			e.logger.Info("bid rejected", "auction", auctionID, "bidder", bidder.AbbrevString(), "err", err)
			return
		}
		e.logger.Info("bid completed", "auction", auctionID, "bidder", bidder.AbbrevString(), "elapsed", time.Since(begin))
	}()

	env := e.newEnv()
	rec, err := env.state.GetAuction(auctionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrAuctionNotFound
	}
	if !rec.Active {
		return ErrAuctionNotActive
	}
	if payment == nil || payment.Sign() <= 0 {
		return ErrZeroBid
	}

	newBid := rec.GetBid(bidder)
	newBid.Add(newBid, payment)
	if newBid.Cmp(rec.StartPrice) < 0 {
		return ErrBelowStartPrice
	}
	required := new(big.Int).Add(rec.HighestBid, rec.MinIncrement)
	if newBid.Cmp(required) < 0 {
		return ErrInsufficientIncrement
	}

	if rec.HasBids() && rec.HighestBidder != bidder {
		prev := rec.HighestBidder
		displaced := rec.GetBid(prev)
		pending, err := env.state.GetPendingReturn(prev)
		if err != nil {
			return err
		}
		if err := env.state.SetPendingReturn(prev, pending.Add(pending, displaced)); err != nil {
			return err
		}
		rec.SetBid(prev, new(big.Int))
	}

	rec.SetBid(bidder, newBid)
	rec.HighestBidder = bidder
	rec.HighestBid = new(big.Int).Set(newBid)
	if rec.Expired(env.now) {
		// late but accepted; closes bidding without settling
		rec.Active = false
	}
	if err = env.state.SetAuction(rec); err != nil {
		return err
	}
	if err = env.state.AddTotalReceived(payment); err != nil {
		return err
	}

	env.addTransfer(bidder, nft.EscrowAddress, payment)
	env.addEvent(nft.EventAuctionBid, auctionID, bidder, newBid)

	if err = env.state.Commit(); err != nil {
		return err
	}
	e.writeLogs(env)

	bidsAcceptedCounter.Inc()
	return nil
}
