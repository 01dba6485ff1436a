package robokassa

import (
	"fmt"
	"net/url"
	"strconv"
)

// Gateway carries everything needed to build outbound payment URLs. Creds must
// already be the pair matching IsTest (test pair for the sandbox, live pair
// otherwise).
type Gateway struct {
	MerchantURL string
	IsTest      bool
	Creds       Credentials
}

// PaymentURLInput describes one order to pay. OutSum accepts any parseable
// numeric string and is canonicalized before signing.
type PaymentURLInput struct {
	InvID       int64
	OutSum      string
	Description string
	// Shp holds the auxiliary parameters (buyer id, chat id, product, order
	// token) echoed back verbatim on every callback.
	Shp   map[string]string
	Email string
}

// BuildPaymentURL composes the signed redirect URL to the gateway's hosted
// payment page.
func BuildPaymentURL(gw Gateway, in PaymentURLInput) (string, error) {
	outSum, err := NormalizeAmount(in.OutSum)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("MerchantLogin", gw.Creds.MerchantLogin)
	q.Set("OutSum", outSum)
	q.Set("InvId", strconv.FormatInt(in.InvID, 10))
	q.Set("Description", in.Description)
	q.Set("SignatureValue", SignOutbound(gw.Creds, outSum, in.InvID, in.Shp))
	q.Set("Culture", "ru")
	q.Set("Encoding", "utf-8")
	if gw.IsTest {
		q.Set("IsTest", "1")
	}
	if in.Email != "" {
		q.Set("Email", in.Email)
	}
	for k, v := range in.Shp {
		q.Set(k, v)
	}

	return fmt.Sprintf("%s?%s", gw.MerchantURL, q.Encode()), nil
}
