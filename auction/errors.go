// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Caller-fault errors. Operations failing with one of these made no state
// change and will keep failing on retry with unchanged inputs.
var (
	// authorization
	ErrNotOwner       = errors.New("not the engine owner")
	ErrNotAssetHolder = errors.New("caller does not hold the asset")

	// validation
	ErrIncorrectFee          = errors.New("attached payment does not equal the listing fee")
	ErrInvalidStartPrice     = errors.New("start price must be positive")
	ErrInvalidDuration       = errors.New("duration must be positive")
	ErrInvalidMinIncrement   = errors.New("minimum increment must not be negative")
	ErrZeroBid               = errors.New("bid payment must be positive")
	ErrBelowStartPrice       = errors.New("cumulative bid below start price")
	ErrInsufficientIncrement = errors.New("cumulative bid below highest bid plus minimum increment")

	// state
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrAuctionNotActive = errors.New("auction not active")
	ErrAuctionNotEnded  = errors.New("auction not ended yet")
	ErrNoFundsToClaim   = errors.New("no funds to claim")
	ErrNoFeesToClaim    = errors.New("no fees to claim")

	// concurrency
	ErrReentrantCall = errors.New("reentrant call rejected, operation in progress")
)

// externalError marks a failure of an external capability (asset registry
// or payment sink). The operation aborted with no state change and may be
// retried as a whole.
type externalError struct {
	cause error
}

func (e *externalError) Error() string { return e.cause.Error() }
func (e *externalError) Unwrap() error { return e.cause }

func external(cause error, msg string) error {
	return &externalError{cause: errors.Wrap(cause, msg)}
}

// IsExternal reports whether err came from an external capability rather
// than from validation or state checks.
func IsExternal(err error) bool {
	var e *externalError
	return stderrors.As(err, &e)
}
