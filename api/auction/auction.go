// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/RonieSteiner/NFT-Auction/api/utils"
	"github.com/RonieSteiner/NFT-Auction/auction"
	"github.com/RonieSteiner/NFT-Auction/nft"
)

type AuctionAPI struct {
	eng *auction.Engine
}

func New(eng *auction.Engine) *AuctionAPI {
	return &AuctionAPI{eng: eng}
}

// convertEngineError maps engine sentinel errors to http status codes.
func convertEngineError(err error) error {
	switch err {
	case auction.ErrNotOwner, auction.ErrNotAssetHolder:
		return utils.Forbidden(err)
	case auction.ErrAuctionNotFound:
		return utils.NotFound(err)
	case auction.ErrIncorrectFee,
		auction.ErrInvalidStartPrice,
		auction.ErrInvalidDuration,
		auction.ErrInvalidMinIncrement,
		auction.ErrZeroBid,
		auction.ErrBelowStartPrice,
		auction.ErrInsufficientIncrement,
		auction.ErrAuctionNotActive,
		auction.ErrAuctionNotEnded,
		auction.ErrNoFundsToClaim,
		auction.ErrNoFeesToClaim:
		return utils.BadRequest(err)
	case auction.ErrReentrantCall:
		return utils.HTTPError(err, http.StatusConflict)
	}
	// external failures and storage errors
	return err
}

func (a *AuctionAPI) handleGetAuctionList(w http.ResponseWriter, req *http.Request) error {
	records, err := a.eng.Auctions()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAuctionList(records))
}

func (a *AuctionAPI) handleGetAuctionByID(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	rec, err := a.eng.Auction(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return utils.NotFound(auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertAuction(rec))
}

func (a *AuctionAPI) handleStartAuction(w http.ResponseWriter, req *http.Request) error {
	var body StartRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	caller, err := nft.ParseAddress(body.Caller)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "caller"))
	}
	startPrice, err := parseAmount(body.StartPrice)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "startPrice"))
	}
	minIncrement, err := parseAmount(body.MinIncrement)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "minIncrement"))
	}
	payment, err := parseAmount(body.Payment)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "payment"))
	}
	id, err := a.eng.Start(caller, body.AssetID, startPrice, minIncrement, body.Duration, payment)
	if err != nil {
		return convertEngineError(err)
	}
	return utils.WriteJSON(w, &StartResponse{ID: id})
}

func (a *AuctionAPI) handleBid(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	var body BidRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	bidder, err := nft.ParseAddress(body.Bidder)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "bidder"))
	}
	payment, err := parseAmount(body.Payment)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "payment"))
	}
	if err := a.eng.Bid(id, bidder, payment); err != nil {
		return convertEngineError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (a *AuctionAPI) handleEndAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "id"))
	}
	var body EndRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	caller, err := nft.ParseAddress(body.Caller)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "caller"))
	}
	if err := a.eng.End(id, caller); err != nil {
		return convertEngineError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (a *AuctionAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuctionList))
	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handleStartAuction))
	sub.Path("/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuctionByID))
	sub.Path("/{id}/bids").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handleBid))
	sub.Path("/{id}/end").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handleEndAuction))
}
