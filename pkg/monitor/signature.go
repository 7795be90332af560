package monitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

var (
	ErrBadSignature   = errors.New("signature mismatch")
	ErrStaleTimestamp = errors.New("request timestamp outside tolerance window")
)

// SignatureVerifier authenticates device payloads: hex HMAC-SHA256 over the
// raw request body concatenated with the timestamp header and the device id.
// The raw bytes are signed, never a re-serialized object. The timestamp
// tolerance bounds how long a captured signature stays valid at all; the
// idempotency cache separately makes repeats of a still-valid request free
// of duplicate side effects.
type SignatureVerifier struct {
	Tolerance time.Duration

	nowFn func() time.Time
}

func NewSignatureVerifier(tolerance time.Duration) *SignatureVerifier {
	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}
	return &SignatureVerifier{Tolerance: tolerance, nowFn: time.Now}
}

func (v *SignatureVerifier) Verify(rawBody []byte, timestamp, deviceID, signature, secret string) error {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ErrStaleTimestamp
	}

	age := v.nowFn().Sub(ts)
	if age < -v.Tolerance || age > v.Tolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	mac.Write([]byte(timestamp))
	mac.Write([]byte(deviceID))
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrBadSignature
	}
	if !hmac.Equal(expected, got) {
		return ErrBadSignature
	}
	return nil
}

// Sign is the client half, used by tests and tooling.
func (v *SignatureVerifier) Sign(rawBody []byte, timestamp, deviceID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	mac.Write([]byte(timestamp))
	mac.Write([]byte(deviceID))
	return hex.EncodeToString(mac.Sum(nil))
}
