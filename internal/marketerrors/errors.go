package marketerrors

import "errors"

// Kind classifies a failure for callers that only care about the category,
// such as the HTTP layer choosing a status code.
type Kind string

const (
	KindNotFound      Kind = "NOT_FOUND"
	KindNotAuthorized Kind = "NOT_AUTHORIZED"
	KindInvalidState  Kind = "INVALID_STATE"
	KindConflict      Kind = "CONFLICT"
	KindValidation    Kind = "VALIDATION"
	KindInternal      Kind = "INTERNAL"
)

// Error is a named marketplace failure. Values are compared by identity, so
// callers wrap them with %w and match with errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Repository-level errors
var (
	ErrNotFound = newError(KindNotFound, "NOT_FOUND", "record not found")
	ErrConflict = newError(KindConflict, "CONFLICT", "uniqueness constraint violated")
)

// not found
var (
	ErrItemNotFound        = newError(KindNotFound, "ITEM_NOT_FOUND", "inventory item not found")
	ErrAuctionNotFound     = newError(KindNotFound, "AUCTION_NOT_FOUND", "auction not found")
	ErrBidNotFound         = newError(KindNotFound, "BID_NOT_FOUND", "bid not found")
	ErrRequirementNotFound = newError(KindNotFound, "REQUIREMENT_NOT_FOUND", "requirement not found")
	ErrDealNotFound        = newError(KindNotFound, "DEAL_NOT_FOUND", "deal not found")
)

// authorization errors
var (
	ErrForbidden           = newError(KindNotAuthorized, "FORBIDDEN", "not allowed to modify this item")
	ErrNotOwner            = newError(KindNotAuthorized, "NOT_OWNER", "actor does not own the inventory item")
	ErrNotOwnerOfInventory = newError(KindNotAuthorized, "NOT_OWNER_OF_INVENTORY", "offered inventory belongs to another seller")
	ErrSelfBid             = newError(KindNotAuthorized, "SELF_BID", "cannot bid on your own listing")
	ErrNotAuthorized       = newError(KindNotAuthorized, "NOT_AUTHORIZED", "actor is not authorized for this action")
)

// business logic errors
var (
	ErrLocked            = newError(KindInvalidState, "LOCKED", "inventory item is locked")
	ErrItemNotAvailable  = newError(KindInvalidState, "ITEM_NOT_AVAILABLE", "inventory item is not available")
	ErrInconsistentLock  = newError(KindInvalidState, "INCONSISTENT_LOCK", "lock flag does not match inventory status")
	ErrPriceTooLow       = newError(KindInvalidState, "PRICE_TOO_LOW", "base price is below the item price")
	ErrHasBids           = newError(KindInvalidState, "HAS_BIDS", "bids already exist")
	ErrNotStarted        = newError(KindInvalidState, "NOT_STARTED", "auction has not started")
	ErrEnded             = newError(KindInvalidState, "ENDED", "auction has ended")
	ErrUnavailable       = newError(KindInvalidState, "UNAVAILABLE", "item is no longer available for bidding")
	ErrTooLow            = newError(KindInvalidState, "TOO_LOW", "bid amount must exceed the current bid")
	ErrAlreadyHighest    = newError(KindInvalidState, "ALREADY_HIGHEST", "you already hold the highest bid")
	ErrNotActive         = newError(KindInvalidState, "NOT_ACTIVE", "requirement is not accepting bids")
	ErrInventoryLocked   = newError(KindInvalidState, "INVENTORY_LOCKED", "offered inventory is locked")
	ErrNotSubmitted      = newError(KindInvalidState, "NOT_SUBMITTED", "bid is no longer open")
	ErrAlreadyAccepted   = newError(KindInvalidState, "ALREADY_ACCEPTED", "another bid has already been accepted")
	ErrBidNotAccepted    = newError(KindInvalidState, "BID_NOT_ACCEPTED", "deal requires an accepted bid")
	ErrInvalidTransition = newError(KindInvalidState, "INVALID_TRANSITION", "deal status transition not allowed")
)

// uniqueness conflicts
var (
	ErrActiveBidExists      = newError(KindConflict, "ACTIVE_BID_EXISTS", "an active bid already exists for this requirement")
	ErrDuplicateBid         = newError(KindConflict, "DUPLICATE_BID", "an identical bid already exists")
	ErrHighestBidTaken      = newError(KindConflict, "HIGHEST_BID_TAKEN", "a concurrent bid took the highest position")
	ErrDuplicateDeal        = newError(KindConflict, "DUPLICATE_DEAL", "a deal already exists for this bid")
	ErrDuplicateRequirement = newError(KindConflict, "DUPLICATE_REQUIREMENT", "an equivalent active requirement already exists")
)

// input errors
var (
	ErrValidation = newError(KindValidation, "VALIDATION", "invalid input")
	ErrInvalidID  = newError(KindValidation, "INVALID_ID", "malformed identifier")
)

// KindOf reports the kind of the first marketplace error in err's chain.
// Unknown errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the code of the first marketplace error in err's chain, or
// "INTERNAL".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return string(KindInternal)
}
