// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

func TestParseAddress(t *testing.T) {
	addr, err := nft.ParseAddress("0x8a88c59bf15451f9deb1d62f7734fece2002668e")
	assert.Nil(t, err)
	assert.Equal(t, "0x8a88c59bf15451f9deb1d62f7734fece2002668e", addr.String())

	// no prefix
	addr2, err := nft.ParseAddress("8a88c59bf15451f9deb1d62f7734fece2002668e")
	assert.Nil(t, err)
	assert.Equal(t, addr, addr2)

	_, err = nft.ParseAddress("0x8a88")
	assert.NotNil(t, err)

	_, err = nft.ParseAddress("zz88c59bf15451f9deb1d62f7734fece2002668e")
	assert.NotNil(t, err)
}

func TestAbbrevString(t *testing.T) {
	addr := nft.MustParseAddress("0x8a88c59bf15451f9deb1d62f7734fece2002668e")
	assert.Equal(t, "0x8a88…668e", addr.AbbrevString())
}

func TestBytesToAddress(t *testing.T) {
	// short input pads to the left
	addr := nft.BytesToAddress([]byte("seller"))
	assert.Equal(t, byte(0), addr[0])
	assert.False(t, addr.IsZero())

	assert.True(t, nft.ZeroAddress.IsZero())
	assert.False(t, nft.EscrowAddress.IsZero())
}

func TestListingFeeTruncates(t *testing.T) {
	cases := []struct {
		price int64
		fee   int64
	}{
		{100, 2},
		{149, 2}, // 2.98 truncates
		{50, 1},
		{49, 0},
		{1, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.fee, nft.ListingFee(bigInt(c.price)).Int64(), "price %d", c.price)
	}
}

func TestCommissionTruncates(t *testing.T) {
	cases := []struct {
		bid        int64
		commission int64
	}{
		{110, 11},
		{109, 10}, // 10.9 truncates
		{9, 0},
		{10, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.commission, nft.Commission(bigInt(c.bid)).Int64(), "bid %d", c.bid)
	}
}
