// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auctionapi "github.com/RonieSteiner/NFT-Auction/api/auction"
	"github.com/RonieSteiner/NFT-Auction/api/ledger"
	"github.com/RonieSteiner/NFT-Auction/api/logs"
	"github.com/RonieSteiner/NFT-Auction/auction"
	"github.com/RonieSteiner/NFT-Auction/logdb"
)

// New return api router. logDB may be nil, in which case the log
// endpoints are not mounted.
func New(eng *auction.Engine, logDB *logdb.LogDB, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	auctionapi.New(eng).
		Mount(router, "/auctions")
	ledger.New(eng).
		Mount(router, "/ledger")
	if logDB != nil {
		logs.New(logDB).
			Mount(router, "/logs")
	}
	router.Path("/metrics").Handler(promhttp.Handler())

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP
}
