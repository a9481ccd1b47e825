// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

// Auction is the JSON presentation of an auction record.
type Auction struct {
	ID            uint64 `json:"id"`
	AssetID       uint64 `json:"assetID"`
	Seller        string `json:"seller"`
	StartPrice    string `json:"startPrice"`
	MinIncrement  string `json:"minIncrement"`
	CreateTime    uint64 `json:"createTime"`
	EndTime       uint64 `json:"endTime"`
	Active        bool   `json:"active"`
	Settled       bool   `json:"settled"`
	HighestBidder string `json:"highestBidder,omitempty"`
	HighestBid    string `json:"highestBid"`
	Bids          []*Bid `json:"bids"`
}

// Bid is the JSON presentation of a live bid entry.
type Bid struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func convertAuction(rec *nft.AuctionRecord) *Auction {
	bids := make([]*Bid, 0, len(rec.Bids))
	for _, b := range rec.Bids {
		bids = append(bids, &Bid{
			Address: b.Address.String(),
			Amount:  b.Amount.String(),
		})
	}
	a := &Auction{
		ID:           rec.ID,
		AssetID:      rec.AssetID,
		Seller:       rec.Seller.String(),
		StartPrice:   rec.StartPrice.String(),
		MinIncrement: rec.MinIncrement.String(),
		CreateTime:   rec.CreateTime,
		EndTime:      rec.EndTime,
		Active:       rec.Active,
		Settled:      rec.Settled,
		HighestBid:   rec.HighestBid.String(),
		Bids:         bids,
	}
	if rec.HasBids() {
		a.HighestBidder = rec.HighestBidder.String()
	}
	return a
}

func convertAuctionList(records []*nft.AuctionRecord) []*Auction {
	auctionList := make([]*Auction, 0, len(records))
	for _, rec := range records {
		auctionList = append(auctionList, convertAuction(rec))
	}
	return auctionList
}

// StartRequest is the body of POST /auctions. The transport layer is
// trusted to have authenticated Caller and debited Payment.
type StartRequest struct {
	Caller       string `json:"caller"`
	AssetID      uint64 `json:"assetID"`
	StartPrice   string `json:"startPrice"`
	MinIncrement string `json:"minIncrement"`
	Duration     uint64 `json:"duration"`
	Payment      string `json:"payment"`
}

// StartResponse carries the assigned auction ID.
type StartResponse struct {
	ID uint64 `json:"id"`
}

// BidRequest is the body of POST /auctions/{id}/bids.
type BidRequest struct {
	Bidder  string `json:"bidder"`
	Payment string `json:"payment"`
}

// EndRequest is the body of POST /auctions/{id}/end.
type EndRequest struct {
	Caller string `json:"caller"`
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.New("invalid amount: " + s)
	}
	return v, nil
}
