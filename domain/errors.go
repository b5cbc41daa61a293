package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidCurrency     = errors.New("currency not supported by this market")

	ErrInvalidDuration   = errors.New("incorrect duration")
	ErrInvalidStartTime  = errors.New("incorrect start time")
	ErrBidTooLow         = errors.New("bid price below minimal next bid")
	ErrOwnListing        = errors.New("cannot bid on your own listing")
	ErrListingNotActive  = errors.New("listing is not active")
	ErrListingHasBid     = errors.New("cannot cancel after the first bid is made")
	ErrListingNotEnded   = errors.New("listing can be finalized only after the end time")
	ErrNoActiveBid       = errors.New("there are no active non-finished bids")
	ErrBidNotExpired     = errors.New("bid has not expired")
	ErrOriginFeeTooHigh  = errors.New("total origin fee exceeds the protocol cap")
	ErrInsufficientFunds = errors.New("not enough funds")
	ErrNotOwner          = errors.New("caller is not the owner")
	ErrInvalidPayout     = errors.New("payout table is malformed")
)
