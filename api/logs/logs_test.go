// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package logs_test

import (
	"encoding/json"
	"io/ioutil"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/RonieSteiner/NFT-Auction/api/logs"
	"github.com/RonieSteiner/NFT-Auction/logdb"
	"github.com/RonieSteiner/NFT-Auction/nft"
)

var (
	ts     *httptest.Server
	bidder = nft.BytesToAddress([]byte("bidder"))
)

func initLogsServer(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	for i := 0; i < 30; i++ {
		name := nft.EventAuctionBid
		if i%10 == 0 {
			name = nft.EventAuctionStarted
		}
		err := db.Write(
			nft.Events{{
				Name:      name,
				AuctionID: uint64(i%3 + 1),
				Address:   bidder,
				Amount:    big.NewInt(int64(100 + i)),
				Timestamp: uint64(1000 + i),
			}},
			nft.Transfers{{
				Sender:    bidder,
				Recipient: nft.EscrowAddress,
				Amount:    big.NewInt(int64(100 + i)),
				Timestamp: uint64(1000 + i),
			}},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	router := mux.NewRouter()
	logs.New(db).Mount(router, "/logs")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
}

func TestFilterEvents(t *testing.T) {
	initLogsServer(t)

	var events []*logs.Event
	httpGetJSON(t, ts.URL+"/logs/events?name=AuctionBid&order=desc&limit=5", &events)
	assert.Equal(t, 5, len(events))
	assert.True(t, events[0].Seq > events[1].Seq, "descending order expected")
	for _, ev := range events {
		assert.Equal(t, nft.EventAuctionBid, ev.Name)
		assert.Equal(t, bidder.String(), ev.Address)
	}

	httpGetJSON(t, ts.URL+"/logs/events?auctionID=2", &events)
	for _, ev := range events {
		assert.Equal(t, uint64(2), ev.AuctionID)
	}

	httpGetJSON(t, ts.URL+"/logs/events?from=1000&to=1009", &events)
	assert.Equal(t, 10, len(events))
}

func TestFilterEventsBadQuery(t *testing.T) {
	initLogsServer(t)

	_, code := httpGet(t, ts.URL+"/logs/events?auctionID=not-a-number")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/logs/events?address=nope")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/logs/events?from=abc")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/logs/events?limit=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFilterTransfers(t *testing.T) {
	initLogsServer(t)

	var transfers []*logs.Transfer
	httpGetJSON(t, ts.URL+"/logs/transfers?sender="+bidder.String()+"&limit=10&offset=5", &transfers)
	assert.Equal(t, 10, len(transfers))
	assert.Equal(t, int64(105), mustAmount(t, transfers[0].Amount))
	for _, tr := range transfers {
		assert.Equal(t, bidder.String(), tr.Sender)
		assert.Equal(t, nft.EscrowAddress.String(), tr.Recipient)
	}

	other := nft.BytesToAddress([]byte("other"))
	httpGetJSON(t, ts.URL+"/logs/transfers?recipient="+other.String(), &transfers)
	assert.Equal(t, 0, len(transfers))

	_, code := httpGet(t, ts.URL+"/logs/transfers?sender=nope")
	assert.Equal(t, http.StatusBadRequest, code)
}

func mustAmount(t *testing.T, s string) int64 {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad amount %q", s)
	}
	return v.Int64()
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
