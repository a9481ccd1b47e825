// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/RonieSteiner/NFT-Auction/api/utils"
	"github.com/RonieSteiner/NFT-Auction/auction"
	"github.com/RonieSteiner/NFT-Auction/nft"
)

type LedgerAPI struct {
	eng *auction.Engine
}

func New(eng *auction.Engine) *LedgerAPI {
	return &LedgerAPI{eng: eng}
}

// Balance is the JSON presentation of a ledger balance.
type Balance struct {
	Address string `json:"address,omitempty"`
	Amount  string `json:"amount"`
}

// ClaimRequest is the body of the claim endpoints.
type ClaimRequest struct {
	Caller string `json:"caller"`
}

func convertEngineError(err error) error {
	switch err {
	case auction.ErrNotOwner:
		return utils.Forbidden(err)
	case auction.ErrNoFundsToClaim, auction.ErrNoFeesToClaim:
		return utils.BadRequest(err)
	case auction.ErrReentrantCall:
		return utils.HTTPError(err, http.StatusConflict)
	}
	return err
}

func (l *LedgerAPI) handleGetPendingReturn(w http.ResponseWriter, req *http.Request) error {
	addr, err := nft.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "address"))
	}
	amount, err := l.eng.PendingReturn(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Address: addr.String(), Amount: amount.String()})
}

func (l *LedgerAPI) handleGetRetainedBalance(w http.ResponseWriter, req *http.Request) error {
	amount, err := l.eng.RetainedBalance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Amount: amount.String()})
}

func (l *LedgerAPI) handleClaimRefund(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	caller, err := nft.ParseAddress(body.Caller)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "caller"))
	}
	claimed, err := l.eng.ClaimRefund(caller)
	if err != nil {
		return convertEngineError(err)
	}
	return utils.WriteJSON(w, &Balance{Address: caller.String(), Amount: claimed.String()})
}

func (l *LedgerAPI) handleClaimFees(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.Wrap(err, "body"))
	}
	caller, err := nft.ParseAddress(body.Caller)
	if err != nil {
		return utils.BadRequest(errors.Wrap(err, "caller"))
	}
	claimed, err := l.eng.ClaimFees(caller)
	if err != nil {
		return convertEngineError(err)
	}
	return utils.WriteJSON(w, &Balance{Address: caller.String(), Amount: claimed.String()})
}

func (l *LedgerAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/pending/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleGetPendingReturn))
	sub.Path("/retained").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleGetRetainedBalance))
	sub.Path("/refund-claims").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(l.handleClaimRefund))
	sub.Path("/fee-claims").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(l.handleClaimFees))
}
