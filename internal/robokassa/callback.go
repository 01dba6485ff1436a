package robokassa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vladima-ai/payment-service/internal/domain"
)

// Callback is a verified gateway callback (ResultURL or SuccessURL).
type Callback struct {
	// OutSum is the canonicalized amount for business comparisons against the
	// ledger. OutSumRaw is the amount string exactly as the gateway sent it.
	OutSum    string
	OutSumRaw string
	InvID     int64
	Shp       map[string]string
	Signature string
	// Raw is the full parameter snapshot, persisted for audit at the moment
	// of transition.
	Raw map[string]string
}

// The gateway's parameter casing is not consistent across transports, so both
// spellings are accepted.
func pick(params map[string]string, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := params[name]; ok {
			return v, true
		}
	}
	return "", false
}

// ExtractShp collects the auxiliary parameters by their recognized prefix.
func ExtractShp(params map[string]string) map[string]string {
	shp := make(map[string]string)
	for k, v := range params {
		if strings.HasPrefix(k, ShpPrefix) {
			shp[k] = v
		}
	}
	return shp
}

func extractRequired(params map[string]string) (outSum, invIDRaw, sig string, err error) {
	outSum, okSum := pick(params, "OutSum", "out_sum")
	invIDRaw, okInv := pick(params, "InvId", "inv_id")
	sig, okSig := pick(params, "SignatureValue", "signature_value")
	if !okSum || !okInv || !okSig {
		return "", "", "", fmt.Errorf("%w: OutSum/InvId/SignatureValue", domain.ErrMissingParameters)
	}
	return outSum, invIDRaw, sig, nil
}

// VerifyResultURL validates a server-to-server payment notification. The
// signature is recomputed over the raw gateway-supplied OutSum — the gateway
// signs its own amount formatting, which may legitimately differ from the
// canonical form in trailing-zero style. The canonical amount is exposed
// separately for the ledger comparison.
func VerifyResultURL(params map[string]string, creds Credentials) (*Callback, error) {
	outSumRaw, invIDRaw, sig, err := extractRequired(params)
	if err != nil {
		return nil, err
	}

	outSumRaw = strings.TrimSpace(outSumRaw)
	outSum, err := NormalizeAmount(outSumRaw)
	if err != nil {
		return nil, err
	}
	invID, err := strconv.ParseInt(strings.TrimSpace(invIDRaw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad InvId %q", domain.ErrMissingParameters, invIDRaw)
	}
	shp := ExtractShp(params)

	if !DigestsEqual(sig, SignResult(creds, outSumRaw, invID, shp)) {
		return nil, fmt.Errorf("%w: ResultURL, InvId=%d", domain.ErrBadSignature, invID)
	}

	return &Callback{
		OutSum:    outSum,
		OutSumRaw: outSumRaw,
		InvID:     invID,
		Shp:       shp,
		Signature: sig,
		Raw:       params,
	}, nil
}

// VerifySuccessURL validates the user-facing redirect after payment. Per the
// gateway spec this path signs the canonical amount with Password1. It is
// informational only and never authoritative for payment state.
func VerifySuccessURL(params map[string]string, creds Credentials) (*Callback, error) {
	outSumRaw, invIDRaw, sig, err := extractRequired(params)
	if err != nil {
		return nil, err
	}

	outSum, err := NormalizeAmount(outSumRaw)
	if err != nil {
		return nil, err
	}
	invID, err := strconv.ParseInt(strings.TrimSpace(invIDRaw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad InvId %q", domain.ErrMissingParameters, invIDRaw)
	}
	shp := ExtractShp(params)

	if !DigestsEqual(sig, SignSuccess(creds, outSum, invID, shp)) {
		return nil, fmt.Errorf("%w: SuccessURL, InvId=%d", domain.ErrBadSignature, invID)
	}

	return &Callback{
		OutSum:    outSum,
		OutSumRaw: strings.TrimSpace(outSumRaw),
		InvID:     invID,
		Shp:       shp,
		Signature: sig,
		Raw:       params,
	}, nil
}
