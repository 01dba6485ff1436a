package robokassa

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladima-ai/payment-service/internal/domain"
)

// NormalizeAmount canonicalizes a monetary value to a string with exactly two
// fractional digits, rounding half-away-from-zero. A comma decimal separator
// is accepted ("10,005" -> "10.01"). The canonical string is the only form
// that goes into signed payloads or the ledger; stored-vs-callback comparisons
// are string equality on it, never numeric tolerance.
func NormalizeAmount(value string) (string, error) {
	s := strings.TrimSpace(value)
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAmount, value)
	}
	// StringFixedBank would round half-to-even; the gateway contract is
	// half-up, which StringFixed implements.
	return d.StringFixed(2), nil
}
