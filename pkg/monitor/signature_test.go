package monitor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/chetansierra/temperature-dashboard-sub001/pkg/testing"
)

func TestSignatureVerifier_RoundTrip(t *testing.T) {
	v := NewSignatureVerifier(5 * time.Minute)

	body := []byte(`{"readings":[{"sensor_id":"550e8400-e29b-41d4-a716-446655440031","ts":"2024-01-01T00:00:00Z","value":-18.5}]}`)
	deviceID := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339)
	secret := "shared-secret"

	sig := v.Sign(body, timestamp, deviceID, secret)
	assert.NoError(t, v.Verify(body, timestamp, deviceID, sig, secret))
}

func TestSignatureVerifier_Mismatch(t *testing.T) {
	v := NewSignatureVerifier(5 * time.Minute)

	body := []byte(`{"readings":[]}`)
	deviceID := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339)

	sig := v.Sign(body, timestamp, deviceID, "secret-a")

	// wrong secret
	require.ErrorIs(t, v.Verify(body, timestamp, deviceID, sig, "secret-b"), ErrBadSignature)

	// tampered body: the raw bytes are what is signed
	require.ErrorIs(t, v.Verify([]byte(`{"readings": []}`), timestamp, deviceID, sig, "secret-a"), ErrBadSignature)

	// signature bound to another device
	require.ErrorIs(t, v.Verify(body, timestamp, uuid.NewString(), sig, "secret-a"), ErrBadSignature)

	// not hex at all
	require.ErrorIs(t, v.Verify(body, timestamp, deviceID, "zz-not-hex", "secret-a"), ErrBadSignature)
}

func TestSignatureVerifier_ReplayWindow(t *testing.T) {
	v := NewSignatureVerifier(5 * time.Minute)
	now := time.Now()
	v.nowFn = func() time.Time { return now }

	body := []byte(`{"readings":[]}`)
	deviceID := uuid.NewString()
	secret := "shared-secret"

	fresh := now.Add(-time.Minute).UTC().Format(time.RFC3339)
	require.NoError(t, v.Verify(body, fresh, deviceID, v.Sign(body, fresh, deviceID, secret), secret))

	// a validly signed request expires once outside the tolerance window
	stale := now.Add(-6 * time.Minute).UTC().Format(time.RFC3339)
	require.ErrorIs(t, v.Verify(body, stale, deviceID, v.Sign(body, stale, deviceID, secret), secret), ErrStaleTimestamp)

	future := now.Add(6 * time.Minute).UTC().Format(time.RFC3339)
	require.ErrorIs(t, v.Verify(body, future, deviceID, v.Sign(body, future, deviceID, secret), secret), ErrStaleTimestamp)

	require.ErrorIs(t, v.Verify(body, "not-a-timestamp", deviceID, "00", secret), ErrStaleTimestamp)
}
