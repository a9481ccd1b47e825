// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/RonieSteiner/NFT-Auction/kv"
	"github.com/RonieSteiner/NFT-Auction/nft"
)

var (
	auctionKeyPrefix = []byte("auction-record-")
	pendingKeyPrefix = []byte("pending-return-")

	retainedBalanceKey = []byte("retained-balance")
	lastAuctionIDKey   = []byte("last-auction-id")
	totalReceivedKey   = []byte("total-received")
	totalPaidKey       = []byte("total-paid")
)

// State is a staged view over the durable store. Reads fall through to
// the underlying kv store; writes stage in memory until Commit flushes
// them in a single atomic batch. An operation that fails before Commit
// therefore persists nothing.
type State struct {
	store  kv.Store
	staged map[string][]byte
}

// New creates a fresh staged view over store.
func New(store kv.Store) *State {
	return &State{
		store:  store,
		staged: make(map[string][]byte),
	}
}

func auctionKey(id uint64) []byte {
	key := make([]byte, 0, len(auctionKeyPrefix)+8)
	key = append(key, auctionKeyPrefix...)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return append(key, b[:]...)
}

func pendingKey(addr nft.Address) []byte {
	key := make([]byte, 0, len(pendingKeyPrefix)+20)
	key = append(key, pendingKeyPrefix...)
	return append(key, addr.Bytes()...)
}

// getRaw reads a key, staged writes first. Returns nil, nil when absent.
func (s *State) getRaw(key []byte) ([]byte, error) {
	if raw, ok := s.staged[string(key)]; ok {
		return raw, nil
	}
	raw, err := s.store.Get(key)
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "state read")
	}
	return raw, nil
}

func (s *State) setRaw(key []byte, raw []byte) {
	s.staged[string(key)] = raw
}

func (s *State) getBig(key []byte) (*big.Int, error) {
	raw, err := s.getRaw(key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return new(big.Int), nil
	}
	v := new(big.Int)
	if err := rlp.DecodeBytes(raw, v); err != nil {
		return nil, errors.Wrap(err, "state decode")
	}
	return v, nil
}

func (s *State) setBig(key []byte, v *big.Int) error {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return errors.Wrap(err, "state encode")
	}
	s.setRaw(key, raw)
	return nil
}

// GetAuction loads an auction record, nil if it does not exist.
func (s *State) GetAuction(id uint64) (*nft.AuctionRecord, error) {
	raw, err := s.getRaw(auctionKey(id))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var rec nft.AuctionRecord
	if err := rlp.DecodeBytes(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "decode auction record")
	}
	return &rec, nil
}

// SetAuction stages an auction record.
func (s *State) SetAuction(rec *nft.AuctionRecord) error {
	raw, err := rlp.EncodeToBytes(rec)
	if err != nil {
		return errors.Wrap(err, "encode auction record")
	}
	s.setRaw(auctionKey(rec.ID), raw)
	return nil
}

// NewAuctionID assigns the next auction ID. IDs are positive, monotone
// and never reused.
func (s *State) NewAuctionID() (uint64, error) {
	raw, err := s.getRaw(lastAuctionIDKey)
	if err != nil {
		return 0, err
	}
	var last uint64
	if len(raw) > 0 {
		if err := rlp.DecodeBytes(raw, &last); err != nil {
			return 0, errors.Wrap(err, "decode last auction id")
		}
	}
	id := last + 1
	enc, err := rlp.EncodeToBytes(id)
	if err != nil {
		return 0, errors.Wrap(err, "encode last auction id")
	}
	s.setRaw(lastAuctionIDKey, enc)
	return id, nil
}

// GetPendingReturn returns the refundable balance of addr.
func (s *State) GetPendingReturn(addr nft.Address) (*big.Int, error) {
	return s.getBig(pendingKey(addr))
}

// SetPendingReturn stages the refundable balance of addr.
func (s *State) SetPendingReturn(addr nft.Address, amount *big.Int) error {
	return s.setBig(pendingKey(addr), amount)
}

// GetRetainedBalance returns the accrued platform fees.
func (s *State) GetRetainedBalance() (*big.Int, error) {
	return s.getBig(retainedBalanceKey)
}

// SetRetainedBalance stages the accrued platform fees.
func (s *State) SetRetainedBalance(amount *big.Int) error {
	return s.setBig(retainedBalanceKey, amount)
}

// GetTotalReceived returns the lifetime sum of all payments taken in.
func (s *State) GetTotalReceived() (*big.Int, error) {
	return s.getBig(totalReceivedKey)
}

// AddTotalReceived stages an increment of the lifetime received total.
func (s *State) AddTotalReceived(amount *big.Int) error {
	total, err := s.GetTotalReceived()
	if err != nil {
		return err
	}
	return s.setBig(totalReceivedKey, total.Add(total, amount))
}

// GetTotalPaid returns the lifetime sum of all payments made out.
func (s *State) GetTotalPaid() (*big.Int, error) {
	return s.getBig(totalPaidKey)
}

// AddTotalPaid stages an increment of the lifetime paid total.
func (s *State) AddTotalPaid(amount *big.Int) error {
	total, err := s.GetTotalPaid()
	if err != nil {
		return err
	}
	return s.setBig(totalPaidKey, total.Add(total, amount))
}

// iterateMerged walks committed entries under prefix with staged writes
// overlaid, in ascending key order.
func (s *State) iterateMerged(prefix []byte, fn func(key string, raw []byte) error) error {
	merged := make(map[string][]byte)
	err := s.store.Iterate(prefix, func(key, value []byte) bool {
		merged[string(key)] = append([]byte(nil), value...)
		return true
	})
	if err != nil {
		return errors.Wrap(err, "state iterate")
	}
	for key, raw := range s.staged {
		if strings.HasPrefix(key, string(prefix)) {
			merged[key] = raw
		}
	}
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := fn(key, merged[key]); err != nil {
			return err
		}
	}
	return nil
}

// Auctions returns all auction records in ID order.
func (s *State) Auctions() ([]*nft.AuctionRecord, error) {
	records := make([]*nft.AuctionRecord, 0)
	err := s.iterateMerged(auctionKeyPrefix, func(_ string, raw []byte) error {
		var rec nft.AuctionRecord
		if err := rlp.DecodeBytes(raw, &rec); err != nil {
			return errors.Wrap(err, "decode auction record")
		}
		records = append(records, &rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// PendingReturnTotal sums all refundable balances.
func (s *State) PendingReturnTotal() (*big.Int, error) {
	total := new(big.Int)
	err := s.iterateMerged(pendingKeyPrefix, func(_ string, raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		v := new(big.Int)
		if err := rlp.DecodeBytes(raw, v); err != nil {
			return errors.Wrap(err, "decode pending return")
		}
		total.Add(total, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

// LiveCommittedTotal sums the live bid amounts of all unsettled auctions.
func (s *State) LiveCommittedTotal() (*big.Int, error) {
	total := new(big.Int)
	records, err := s.Auctions()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if !rec.Settled {
			total.Add(total, rec.LiveTotal())
		}
	}
	return total, nil
}

// ConservationDelta returns received - (pending + retained + live + paid).
// A non-zero result means an operation created or destroyed value.
func (s *State) ConservationDelta() (*big.Int, error) {
	received, err := s.GetTotalReceived()
	if err != nil {
		return nil, err
	}
	pending, err := s.PendingReturnTotal()
	if err != nil {
		return nil, err
	}
	retained, err := s.GetRetainedBalance()
	if err != nil {
		return nil, err
	}
	live, err := s.LiveCommittedTotal()
	if err != nil {
		return nil, err
	}
	paid, err := s.GetTotalPaid()
	if err != nil {
		return nil, err
	}
	delta := new(big.Int).Set(received)
	delta.Sub(delta, pending)
	delta.Sub(delta, retained)
	delta.Sub(delta, live)
	return delta.Sub(delta, paid), nil
}

// Commit flushes all staged writes through one atomic batch.
func (s *State) Commit() error {
	if len(s.staged) == 0 {
		return nil
	}
	batch := s.store.NewBatch()
	for key, raw := range s.staged {
		if err := batch.Put([]byte(key), raw); err != nil {
			return errors.Wrap(err, "state batch")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "state commit")
	}
	s.staged = make(map[string][]byte)
	return nil
}
