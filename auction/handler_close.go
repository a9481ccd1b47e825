// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"time"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// End settles an expired auction. Anyone may call it. With a winner, the
// asset leaves escrow to the winner, a 10% commission (truncating) is
// retained and the remainder is paid directly to the seller; with no
// bids the asset returns to the seller. Settlement happens exactly once;
// a second call fails with ErrAuctionNotActive. If either the custody
// transfer or the seller payment fails, the whole operation aborts with
// no state change and can be retried.
func (e *Engine) End(auctionID uint64, caller nft.Address) (err error) {
	if err = e.enter(); err != nil {
		return err
	}
	defer e.exit()
	begin := time.Now()
	defer func() {
		if err != nil {
			e.logger.Info("auction end rejected", "auction", auctionID, "caller", caller.AbbrevString(), "err", err)
			return
		}
		e.logger.Info("auction end completed", "auction", auctionID, "elapsed", time.Since(begin))
	}()

	env := e.newEnv()
	rec, err := env.state.GetAuction(auctionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrAuctionNotFound
	}
	if rec.Settled {
		return ErrAuctionNotActive
	}
	if !rec.Expired(env.now) {
		return ErrAuctionNotEnded
	}

	rec.Active = false
	rec.Settled = true
	if err = env.state.SetAuction(rec); err != nil {
		return err
	}

	if !rec.HasBids() {
		env.addEvent(nft.EventAuctionEnded, auctionID, nft.ZeroAddress, new(big.Int))
		if err = e.registry.Transfer(rec.AssetID, nft.EscrowAddress, rec.Seller); err != nil {
			return external(err, "return asset to seller")
		}
		if err = env.state.Commit(); err != nil {
			if cerr := e.registry.Transfer(rec.AssetID, rec.Seller, nft.EscrowAddress); cerr != nil {
				e.logger.Error("asset stranded outside escrow after failed commit",
					"auction", auctionID, "asset", rec.AssetID, "err", cerr)
			}
			return err
		}
		e.writeLogs(env)
		auctionsEndedCounter.Inc()
		return nil
	}

	commission := nft.Commission(rec.HighestBid)
	payout := new(big.Int).Sub(rec.HighestBid, commission)

	retained, err := env.state.GetRetainedBalance()
	if err != nil {
		return err
	}
	retained.Add(retained, commission)
	if err = env.state.SetRetainedBalance(retained); err != nil {
		return err
	}
	if err = env.state.AddTotalPaid(payout); err != nil {
		return err
	}

	env.addTransfer(nft.EscrowAddress, rec.Seller, payout)
	env.addEvent(nft.EventAuctionEnded, auctionID, rec.HighestBidder, rec.HighestBid)

	// interactions strictly after staged effects: asset to the winner,
	// then the seller payout, which must not fail silently. Custody is
	// reversible, the payout is not, so the payout goes last and a
	// failed payout sends the asset back to escrow before aborting;
	// a retry then starts over with escrow holding the asset.
	if err = e.registry.Transfer(rec.AssetID, nft.EscrowAddress, rec.HighestBidder); err != nil {
		return external(err, "transfer asset to winner")
	}
	if err = e.payer.Pay(rec.Seller, payout); err != nil {
		if cerr := e.registry.Transfer(rec.AssetID, rec.HighestBidder, nft.EscrowAddress); cerr != nil {
			e.logger.Error("asset stranded outside escrow after failed payout",
				"auction", auctionID, "asset", rec.AssetID, "err", cerr)
		}
		return external(err, "pay seller")
	}

	if err = env.state.Commit(); err != nil {
		// the payout is already out and cannot be reversed; the asset
		// stays with the winner and the record stays unsettled
		e.logger.Error("settlement paid but not recorded, needs reconciliation",
			"auction", auctionID, "err", err)
		return err
	}
	e.writeLogs(env)

	auctionsEndedCounter.Inc()
	setRetainedBalanceGauge(retained)
	return nil
}
