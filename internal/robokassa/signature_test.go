package robokassa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCreds = Credentials{
	MerchantLogin: "demo",
	Password1:     "password_1",
	Password2:     "password_2",
}

// Known-value digests pin the templates byte-for-byte: the deployed gateway
// computes the same MD5 on its side.
func TestSignOutboundKnownValue(t *testing.T) {
	shp := map[string]string{"Shp_user_id": "5", "Shp_chat_id": "77"}
	got := SignOutbound(testCreds, "2990.00", 42, shp)
	assert.Equal(t, "b8decd5ce310b08348110f0090310f2b", got)
}

func TestSignResultKnownValue(t *testing.T) {
	shp := map[string]string{"Shp_order_token": "tok"}
	got := SignResult(testCreds, "2990", 42, shp)
	assert.Equal(t, "d7cfeb809ac433e83f7c3a9c2c99a9a7", got)
}

func TestSignSuccessKnownValue(t *testing.T) {
	shp := map[string]string{"Shp_order_token": "tok"}
	got := SignSuccess(testCreds, "2990.00", 42, shp)
	assert.Equal(t, "3449b5cd0f11b5e5478d29d962207ef8", got)
}

// Same content in different insertion order must sign identically: the suffix
// iterates entries in sorted key order on both sides.
func TestShpOrderIndependence(t *testing.T) {
	a := map[string]string{}
	a["Shp_b"] = "2"
	a["Shp_a"] = "1"

	b := map[string]string{}
	b["Shp_a"] = "1"
	b["Shp_b"] = "2"

	assert.Equal(t,
		SignOutbound(testCreds, "100.00", 1, a),
		SignOutbound(testCreds, "100.00", 1, b),
	)
}

func TestSignNoShpSuffix(t *testing.T) {
	assert.Equal(t,
		SignResult(testCreds, "100.00", 1, nil),
		SignResult(testCreds, "100.00", 1, map[string]string{}),
	)
}

func TestDigestsEqual(t *testing.T) {
	d := SignResult(testCreds, "100.00", 1, nil)

	assert.True(t, DigestsEqual(strings.ToUpper(d), d))
	assert.False(t, DigestsEqual(d[:len(d)-1], d), "prefix must not match")
	assert.False(t, DigestsEqual("", d))

	flipped := []byte(d)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	assert.False(t, DigestsEqual(string(flipped), d))
}
