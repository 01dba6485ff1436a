package robokassa

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ShpPrefix marks auxiliary parameters that round-trip through the gateway
// unchanged and are echoed back on every callback.
const ShpPrefix = "Shp_"

// Credentials is one merchant password pair. Test mode uses a separate pair
// configured in the gateway's technical settings; mixing the pairs makes the
// gateway silently reject the payment form.
type Credentials struct {
	MerchantLogin string
	Password1     string
	Password2     string
}

// The digest is MD5 by the gateway's specification. It must stay MD5: the
// gateway computes the same template on its side, and any other algorithm
// never matches.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// shpSuffix builds the deterministic auxiliary-parameter tail of a signature
// template: entries sorted by key in byte order, each appended as ":key=value".
// Signer and verifier must iterate in this exact order or nothing matches.
func shpSuffix(shp map[string]string) string {
	if len(shp) == 0 {
		return ""
	}
	keys := make([]string, 0, len(shp))
	for k := range shp {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(shp[k])
	}
	return b.String()
}

// SignOutbound signs the payment-page URL:
// MerchantLogin:OutSum:InvId:Password1[:Shp_...].
func SignOutbound(creds Credentials, outSum string, invID int64, shp map[string]string) string {
	return md5Hex(fmt.Sprintf("%s:%s:%d:%s%s", creds.MerchantLogin, outSum, invID, creds.Password1, shpSuffix(shp)))
}

// SignResult signs the ResultURL notification: OutSum:InvId:Password2[:Shp_...].
// outSum must be the raw string exactly as the gateway sent it — the gateway
// signs its own formatting (e.g. "2990", not "2990.00").
func SignResult(creds Credentials, outSum string, invID int64, shp map[string]string) string {
	return md5Hex(fmt.Sprintf("%s:%d:%s%s", outSum, invID, creds.Password2, shpSuffix(shp)))
}

// SignSuccess signs the SuccessURL redirect: OutSum:InvId:Password1[:Shp_...].
// This path reuses Password1, not Password2 — gateway protocol, not a choice.
func SignSuccess(creds Credentials, outSum string, invID int64, shp map[string]string) string {
	return md5Hex(fmt.Sprintf("%s:%d:%s%s", outSum, invID, creds.Password1, shpSuffix(shp)))
}

// DigestsEqual compares hex digests case-insensitively. Exact match only, no
// prefixes.
func DigestsEqual(got, want string) bool {
	return strings.EqualFold(got, want)
}
