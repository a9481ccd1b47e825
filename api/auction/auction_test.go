// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package auction_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	api_auction "github.com/RonieSteiner/NFT-Auction/api/auction"
	"github.com/RonieSteiner/NFT-Auction/auction"
	"github.com/RonieSteiner/NFT-Auction/lvldb"
	"github.com/RonieSteiner/NFT-Auction/nft"
	"github.com/RonieSteiner/NFT-Auction/registry"
)

var (
	ts     *httptest.Server
	assets *registry.Memory
)

const sellerHex = "0x8a88c59bf15451f9deb1d62f7734fece2002668e"
const bidderHex = "0x0205c2d862ca051010698b69b54278cbaf945c0b"

func initAuctionServer(t *testing.T) {
	db, err := lvldb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	assets = registry.NewMemory()
	assets.SetHolder(7, nft.MustParseAddress(sellerHex))
	eng := auction.New(db, nil, assets, registry.NewBank(), auction.Options{
		Owner: nft.BytesToAddress([]byte("owner")),
	})

	router := mux.NewRouter()
	api_auction.New(eng).Mount(router, "/auctions")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
}

func TestAuctionAPI(t *testing.T) {
	initAuctionServer(t)

	// empty list
	var auctionList []*api_auction.Auction
	httpGetJSON(t, ts.URL+"/auctions", &auctionList)
	assert.Equal(t, 0, len(auctionList))

	// start
	res, code := httpPost(t, ts.URL+"/auctions", &api_auction.StartRequest{
		Caller:       sellerHex,
		AssetID:      7,
		StartPrice:   "100",
		MinIncrement: "10",
		Duration:     600,
		Payment:      "2",
	})
	assert.Equal(t, http.StatusOK, code)
	var started api_auction.StartResponse
	if err := json.Unmarshal(res, &started); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, uint64(1), started.ID)

	// bid
	_, code = httpPost(t, ts.URL+"/auctions/1/bids", &api_auction.BidRequest{
		Bidder:  bidderHex,
		Payment: "100",
	})
	assert.Equal(t, http.StatusNoContent, code)

	var a api_auction.Auction
	httpGetJSON(t, ts.URL+"/auctions/1", &a)
	assert.Equal(t, sellerHex, a.Seller)
	assert.Equal(t, "100", a.HighestBid)
	assert.Equal(t, bidderHex, a.HighestBidder)
	assert.Equal(t, 1, len(a.Bids))
	assert.True(t, a.Active)
}

func TestAuctionAPIErrors(t *testing.T) {
	initAuctionServer(t)

	_, code := httpGet(t, ts.URL+"/auctions/99")
	assert.Equal(t, http.StatusNotFound, code)

	// wrong fee is the caller's fault
	_, code = httpPost(t, ts.URL+"/auctions", &api_auction.StartRequest{
		Caller:       sellerHex,
		AssetID:      7,
		StartPrice:   "100",
		MinIncrement: "0",
		Duration:     600,
		Payment:      "5",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// caller without the asset is forbidden
	_, code = httpPost(t, ts.URL+"/auctions", &api_auction.StartRequest{
		Caller:       bidderHex,
		AssetID:      7,
		StartPrice:   "100",
		MinIncrement: "0",
		Duration:     600,
		Payment:      "2",
	})
	assert.Equal(t, http.StatusForbidden, code)

	// bids on unknown auctions are not found
	_, code = httpPost(t, ts.URL+"/auctions/99/bids", &api_auction.BidRequest{
		Bidder:  bidderHex,
		Payment: "100",
	})
	assert.Equal(t, http.StatusNotFound, code)

	// bad amounts never reach the engine
	_, code = httpPost(t, ts.URL+"/auctions", &api_auction.StartRequest{
		Caller:     sellerHex,
		AssetID:    7,
		StartPrice: "not-a-number",
		Duration:   600,
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	r, err := ioutil.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}

func httpGetJSON(t *testing.T, url string, v interface{}) {
	r, code := httpGet(t, url)
	assert.Equal(t, http.StatusOK, code)
	if err := json.Unmarshal(r, v); err != nil {
		t.Fatal(err)
	}
}

func httpPost(t *testing.T, url string, body interface{}) ([]byte, int) {
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, err := ioutil.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
