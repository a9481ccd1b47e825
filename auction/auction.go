// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/RonieSteiner/NFT-Auction/kv"
	"github.com/RonieSteiner/NFT-Auction/logdb"
	"github.com/RonieSteiner/NFT-Auction/nft"
	"github.com/RonieSteiner/NFT-Auction/state"
)

// AssetRegistry is the custody collaborator. Holder reports the current
// holder of an asset; Transfer moves holdership atomically or fails with
// no effect.
type AssetRegistry interface {
	Holder(assetID uint64) (nft.Address, error)
	Transfer(assetID uint64, from, to nft.Address) error
}

// PaymentSink pays funds out of the engine to an external address. A
// returned error means no funds moved.
type PaymentSink interface {
	Pay(to nft.Address, amount *big.Int) error
}

// Options configure an Engine.
type Options struct {
	// Owner may claim accrued fees.
	Owner nft.Address
	// Now supplies the engine clock in unix seconds. Defaults to wall
	// clock; tests override it.
	Now func() uint64
}

// Engine is the auction and escrow engine. All state-mutating operations
// are serialized by a single non-reentrant guard: a nested call arriving
// while an operation is in progress fails with ErrReentrantCall. Every
// operation stages its state changes before issuing external transfers
// and commits only after those transfers succeed, so a failed operation
// leaves no trace.
type Engine struct {
	store    kv.Store
	logDB    *logdb.LogDB
	registry AssetRegistry
	payer    PaymentSink
	owner    nft.Address
	now      func() uint64
	logger   *slog.Logger

	inProgress atomic.Bool
}

// New creates an Engine over the given durable store. logDB may be nil to
// disable the event log.
func New(store kv.Store, logDB *logdb.LogDB, registry AssetRegistry, payer PaymentSink, opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	registerMetrics()
	return &Engine{
		store:    store,
		logDB:    logDB,
		registry: registry,
		payer:    payer,
		owner:    opts.Owner,
		now:      now,
		logger:   slog.Default().With("pkg", "auction"),
	}
}

// Owner returns the engine owner identity.
func (e *Engine) Owner() nft.Address {
	return e.owner
}

// enter acquires the global non-reentrant guard.
func (e *Engine) enter() error {
	if !e.inProgress.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	return nil
}

// exit releases the guard. Deferred on every entry path so the guard is
// never left set on error.
func (e *Engine) exit() {
	e.inProgress.Store(false)
}

// writeLogs appends the operation's events and transfers to the event
// log. The operation is already committed at this point; a log failure is
// reported but does not undo it.
func (e *Engine) writeLogs(env *env) {
	if e.logDB == nil {
		return
	}
	if err := e.logDB.Write(env.events, env.transfers); err != nil {
		e.logger.Warn("event log write failed", "err", err)
	}
}

// Auction returns the record for id, nil if it does not exist.
func (e *Engine) Auction(id uint64) (*nft.AuctionRecord, error) {
	return state.New(e.store).GetAuction(id)
}

// Auctions returns all auction records in ID order.
func (e *Engine) Auctions() ([]*nft.AuctionRecord, error) {
	return state.New(e.store).Auctions()
}

// PendingReturn returns the refundable balance of addr.
func (e *Engine) PendingReturn(addr nft.Address) (*big.Int, error) {
	return state.New(e.store).GetPendingReturn(addr)
}

// RetainedBalance returns the accrued platform fees.
func (e *Engine) RetainedBalance() (*big.Int, error) {
	return state.New(e.store).GetRetainedBalance()
}

// ConservationDelta exposes the fund conservation check: received minus
// all liabilities and payouts. Zero unless value leaked.
func (e *Engine) ConservationDelta() (*big.Int, error) {
	return state.New(e.store).ConservationDelta()
}
