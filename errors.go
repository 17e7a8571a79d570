package patron

import (
	"errors"

	"github.com/xraph/patron/wallet"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("patron: not found")
	ErrConflict      = errors.New("patron: already exists")
	ErrInvalidInput  = errors.New("patron: invalid input")
	ErrNotAuthorized = errors.New("patron: not authorized")

	// Creator errors
	ErrCreatorNotFound = errors.New("patron: creator not found")
	ErrInvalidTier     = errors.New("patron: invalid subscription tier")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("patron: subscription not found")

	// Content errors
	ErrContentNotFound  = errors.New("patron: content not found")
	ErrInvalidPrice     = errors.New("patron: price below minimum")
	ErrAlreadyPublished = errors.New("patron: content already published")
	ErrAccessDenied     = errors.New("patron: access denied")

	// Payment errors
	ErrPurchaseNotFound    = errors.New("patron: purchase not found")
	ErrTipNotFound         = errors.New("patron: tip not found")
	ErrAlreadyPurchased    = errors.New("patron: content already purchased")
	ErrInvalidAmount       = errors.New("patron: invalid amount")
	ErrInsufficientBalance = errors.New("patron: insufficient earnings balance")

	// ErrInsufficientFunds surfaces the wallet substrate's debit failure.
	ErrInsufficientFunds = wallet.ErrInsufficientFunds

	// Store errors
	ErrStoreClosed     = errors.New("patron: store is closed")
	ErrMigrationFailed = errors.New("patron: migration failed")
)

// Numeric wire codes preserved from the on-chain taxonomy that existing
// callers depend on. 401, 402, 404 and 407 are fixed; the remaining codes
// fill the same range.
const (
	CodeInvalidInput        = 400
	CodeNotAuthorized       = 401
	CodeInvalidPrice        = 402
	CodeInsufficientFunds   = 403
	CodeNotFound            = 404
	CodeConflict            = 405 // already purchased / already published
	CodeInvalidAmount       = 406
	CodeInvalidTier         = 407
	CodeInsufficientBalance = 408
	CodeAccessDenied        = 410
)

// Code maps an error to its numeric wire code. Unrecognized errors map to
// zero; callers treating the result as an HTTP-ish status should check for
// that explicitly.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrInvalidPrice):
		return CodeInvalidPrice
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case IsNotFound(err):
		return CodeNotFound
	case IsConflict(err):
		return CodeConflict
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidTier):
		return CodeInvalidTier
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrAccessDenied):
		return CodeAccessDenied
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return 0
	}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCreatorNotFound) ||
		errors.Is(err, ErrContentNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrPurchaseNotFound) ||
		errors.Is(err, ErrTipNotFound)
}

// IsConflict returns true if the error reports a duplicate mutation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyPurchased) ||
		errors.Is(err, ErrAlreadyPublished)
}

// IsAuthorization returns true if the error is an authorization failure.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotAuthorized)
}

// IsBalance returns true if the error is a funds or balance failure.
func IsBalance(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientBalance)
}
