// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import "math/big"

const (
	// ListingFeePercent is charged on the start price when an auction is
	// opened. Integer division, truncating toward zero.
	ListingFeePercent = 2

	// CommissionPercent is taken from the winning bid on settlement.
	// Integer division, truncating toward zero.
	CommissionPercent = 10
)

var percentBase = big.NewInt(100)

// ListingFee returns the exact fee required to open an auction at the
// given start price.
func ListingFee(startPrice *big.Int) *big.Int {
	fee := new(big.Int).Mul(startPrice, big.NewInt(ListingFeePercent))
	return fee.Div(fee, percentBase)
}

// Commission returns the platform cut of a winning bid.
func Commission(highestBid *big.Int) *big.Int {
	c := new(big.Int).Mul(highestBid, big.NewInt(CommissionPercent))
	return c.Div(c, percentBase)
}
