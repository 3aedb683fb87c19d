package app

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() *cfg.Properties {
	return &cfg.Properties{
		Auth: cfg.AuthProperties{
			PIN:      "1234",
			Secret:   "test-secret",
			TokenTTL: 168 * time.Hour,
		},
	}
}

func TestSessionAuth(t *testing.T) {
	auth := NewSessionAuth(testSessionConfig())

	t.Run("Login", func(t *testing.T) {
		token, err := auth.Login("1234")
		require.NoError(t, err)
		assert.True(t, auth.Verify(token))

		for _, pin := range []string{"", "1", "123", "12345", "4321", "1235"} {
			_, err := auth.Login(pin)
			assert.ErrorIs(t, err, ErrInvalidPin, "pin %q must be rejected", pin)
		}
	})

	t.Run("VerifyFreshToken", func(t *testing.T) {
		assert.True(t, auth.Verify(auth.Issue()))
	})

	t.Run("VerifyExpiredToken", func(t *testing.T) {
		stale := NewSessionAuth(testSessionConfig())
		stale.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
		token := stale.Issue()
		assert.False(t, auth.Verify(token), "token older than the ttl must be rejected")
	})

	t.Run("VerifyJustInsideTTL", func(t *testing.T) {
		recent := NewSessionAuth(testSessionConfig())
		recent.now = func() time.Time { return time.Now().Add(-6 * 24 * time.Hour) }
		assert.True(t, auth.Verify(recent.Issue()))
	})

	t.Run("VerifyTamperedSignature", func(t *testing.T) {
		token := auth.Issue()
		payload, sig, _ := strings.Cut(token, ".")
		flipped := flipHexDigit(sig)
		assert.False(t, auth.Verify(payload+"."+flipped))
	})

	t.Run("VerifyTamperedPayload", func(t *testing.T) {
		token := auth.Issue()
		_, sig, _ := strings.Cut(token, ".")
		forged := base64.RawURLEncoding.EncodeToString([]byte("9999999999999"))
		assert.False(t, auth.Verify(forged+"."+sig))
	})

	t.Run("VerifyMalformed", func(t *testing.T) {
		cases := []string{
			"",
			"no-separator",
			"notbase64!!!.abcdef",
			base64.RawURLEncoding.EncodeToString([]byte("not-a-number")) + "." + strings.Repeat("ab", 32),
			".",
			"..",
		}
		for _, token := range cases {
			assert.False(t, auth.Verify(token), "token %q must not verify", token)
		}
	})

	t.Run("DifferentSecret", func(t *testing.T) {
		other := testSessionConfig()
		other.Auth.Secret = "other-secret"
		assert.False(t, NewSessionAuth(other).Verify(auth.Issue()))
	})
}

func flipHexDigit(sig string) string {
	replacement := byte('0')
	if sig[0] == '0' {
		replacement = '1'
	}
	return string(replacement) + sig[1:]
}
