package domain

import "errors"

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrBadSignature         = errors.New("bad signature")
	ErrMissingParameters    = errors.New("missing parameters")
	ErrUnknownOrder         = errors.New("unknown order")
	ErrAmountMismatch       = errors.New("amount mismatch")
	ErrTokenMismatch        = errors.New("order token mismatch")
	ErrUnknownProduct       = errors.New("unknown product")
)

// IsCallbackRejection reports whether err is one of the protocol-level
// verification failures that collapse to the gateway's generic "ERROR"
// response. Storage failures are deliberately not in this set: those must
// surface as a hard failure so the gateway retries.
func IsCallbackRejection(err error) bool {
	return errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrMissingParameters) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrUnknownOrder) ||
		errors.Is(err, ErrAmountMismatch) ||
		errors.Is(err, ErrTokenMismatch)
}
