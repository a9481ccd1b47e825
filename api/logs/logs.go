// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/RonieSteiner/NFT-Auction/api/utils"
	"github.com/RonieSteiner/NFT-Auction/logdb"
	"github.com/RonieSteiner/NFT-Auction/nft"
)

type LogsAPI struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *LogsAPI {
	return &LogsAPI{db: db}
}

// Event is the JSON presentation of a logged event.
type Event struct {
	Seq       uint64 `json:"seq"`
	Timestamp uint64 `json:"timestamp"`
	Name      string `json:"name"`
	AuctionID uint64 `json:"auctionID"`
	Address   string `json:"address"`
	Amount    string `json:"amount"`
}

// Transfer is the JSON presentation of a logged fund movement.
type Transfer struct {
	Seq       uint64 `json:"seq"`
	Timestamp uint64 `json:"timestamp"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

func parseRange(req *http.Request) (*logdb.Range, error) {
	from := req.URL.Query().Get("from")
	to := req.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil, nil
	}
	r := &logdb.Range{}
	if from != "" {
		v, err := strconv.ParseUint(from, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "from")
		}
		r.From = v
	}
	if to != "" {
		v, err := strconv.ParseUint(to, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "to")
		}
		r.To = v
	}
	return r, nil
}

func parseOptions(req *http.Request) (*logdb.Options, error) {
	limit := req.URL.Query().Get("limit")
	if limit == "" {
		return nil, nil
	}
	opts := &logdb.Options{}
	v, err := strconv.ParseUint(limit, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "limit")
	}
	opts.Limit = v
	if offset := req.URL.Query().Get("offset"); offset != "" {
		v, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "offset")
		}
		opts.Offset = v
	}
	return opts, nil
}

func parseOrder(req *http.Request) logdb.Order {
	if req.URL.Query().Get("order") == string(logdb.DESC) {
		return logdb.DESC
	}
	return logdb.ASC
}

func (l *LogsAPI) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	filter := &logdb.EventFilter{
		Name:  req.URL.Query().Get("name"),
		Order: parseOrder(req),
	}
	if id := req.URL.Query().Get("auctionID"); id != "" {
		v, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.Wrap(err, "auctionID"))
		}
		filter.AuctionID = &v
	}
	if addr := req.URL.Query().Get("address"); addr != "" {
		a, err := nft.ParseAddress(addr)
		if err != nil {
			return utils.BadRequest(errors.Wrap(err, "address"))
		}
		filter.Address = &a
	}
	r, err := parseRange(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	filter.Range = r
	opts, err := parseOptions(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	filter.Options = opts

	events, err := l.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, &Event{
			Seq:       ev.Seq,
			Timestamp: ev.Timestamp,
			Name:      ev.Name,
			AuctionID: ev.AuctionID,
			Address:   ev.Address.String(),
			Amount:    ev.Amount.String(),
		})
	}
	return utils.WriteJSON(w, out)
}

func (l *LogsAPI) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	filter := &logdb.TransferFilter{Order: parseOrder(req)}
	if addr := req.URL.Query().Get("sender"); addr != "" {
		a, err := nft.ParseAddress(addr)
		if err != nil {
			return utils.BadRequest(errors.Wrap(err, "sender"))
		}
		filter.Sender = &a
	}
	if addr := req.URL.Query().Get("recipient"); addr != "" {
		a, err := nft.ParseAddress(addr)
		if err != nil {
			return utils.BadRequest(errors.Wrap(err, "recipient"))
		}
		filter.Recipient = &a
	}
	r, err := parseRange(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	filter.Range = r
	opts, err := parseOptions(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	filter.Options = opts

	transfers, err := l.db.FilterTransfers(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Transfer, 0, len(transfers))
	for _, tr := range transfers {
		out = append(out, &Transfer{
			Seq:       tr.Seq,
			Timestamp: tr.Timestamp,
			Sender:    tr.Sender.String(),
			Recipient: tr.Recipient.String(),
			Amount:    tr.Amount.String(),
		})
	}
	return utils.WriteJSON(w, out)
}

func (l *LogsAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/events").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleFilterEvents))
	sub.Path("/transfers").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleFilterTransfers))
}
