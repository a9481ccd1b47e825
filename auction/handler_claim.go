// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// ClaimRefund pays out the caller's full pending return. The balance is
// zeroed before the payment is issued; a payment failure aborts before
// commit so the balance stays claimable.
func (e *Engine) ClaimRefund(caller nft.Address) (claimed *big.Int, err error) {
	if err = e.enter(); err != nil {
		return nil, err
	}
	defer e.exit()
	defer func() {
		if err != nil {
			e.logger.Info("refund claim rejected", "caller", caller.AbbrevString(), "err", err)
			return
		}
		e.logger.Info("refund claimed", "caller", caller.AbbrevString(), "amount", claimed.String())
	}()

	env := e.newEnv()
	amount, err := env.state.GetPendingReturn(caller)
	if err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, ErrNoFundsToClaim
	}

	// zero before transfer
	if err = env.state.SetPendingReturn(caller, new(big.Int)); err != nil {
		return nil, err
	}
	if err = env.state.AddTotalPaid(amount); err != nil {
		return nil, err
	}

	env.addTransfer(nft.EscrowAddress, caller, amount)
	env.addEvent(nft.EventFundsWithdrawn, 0, caller, amount)

	if err = e.payer.Pay(caller, amount); err != nil {
		return nil, external(err, "pay refund")
	}

	if err = env.state.Commit(); err != nil {
		return nil, err
	}
	e.writeLogs(env)
	return amount, nil
}

// ClaimFees pays the full retained balance to the engine owner. Only the
// owner may call it. Zeroed before transfer, same as refunds.
func (e *Engine) ClaimFees(caller nft.Address) (claimed *big.Int, err error) {
	if err = e.enter(); err != nil {
		return nil, err
	}
	defer e.exit()
	defer func() {
		if err != nil {
			e.logger.Info("fee claim rejected", "caller", caller.AbbrevString(), "err", err)
			return
		}
		e.logger.Info("fees claimed", "owner", caller.AbbrevString(), "amount", claimed.String())
	}()

	if caller != e.owner {
		return nil, ErrNotOwner
	}

	env := e.newEnv()
	amount, err := env.state.GetRetainedBalance()
	if err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, ErrNoFeesToClaim
	}

	if err = env.state.SetRetainedBalance(new(big.Int)); err != nil {
		return nil, err
	}
	if err = env.state.AddTotalPaid(amount); err != nil {
		return nil, err
	}

	env.addTransfer(nft.EscrowAddress, caller, amount)
	env.addEvent(nft.EventFundsWithdrawn, 0, caller, amount)

	if err = e.payer.Pay(caller, amount); err != nil {
		return nil, external(err, "pay fees")
	}

	if err = env.state.Commit(); err != nil {
		return nil, err
	}
	e.writeLogs(env)

	setRetainedBalanceGauge(new(big.Int))
	return amount, nil
}
