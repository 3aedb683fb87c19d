package app

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"
)

var (
	ErrInvalidPin      = errors.New("invalid pin")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// SessionAuth issues and verifies the stateless admin credential.
// A token is base64url(issuedAtMillis) + "." + hex(HMAC-SHA256(secret, issuedAtMillis)).
// Nothing is stored server-side: a token is valid while its signature
// checks out and it is younger than the configured TTL.
type SessionAuth struct {
	secret []byte
	pin    string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionAuth(config *cfg.Properties) *SessionAuth {
	return &SessionAuth{
		secret: []byte(config.Auth.Secret),
		pin:    config.Auth.PIN,
		ttl:    config.Auth.TokenTTL,
		now:    time.Now,
	}
}

func (s *SessionAuth) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue generates a credential bound to the current time.
func (s *SessionAuth) Issue() string {
	payload := strconv.FormatInt(s.now().UnixMilli(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + s.sign(payload)
}

// Verify reports whether token carries a valid, unexpired signature.
// Malformed input of any kind resolves to false, never to an error.
func (s *SessionAuth) Verify(token string) bool {
	encoded, sig, found := strings.Cut(token, ".")
	if !found {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	check := s.sign(string(payload))
	if subtle.ConstantTimeCompare([]byte(sig), []byte(check)) != 1 {
		return false
	}
	issuedAt, err := strconv.ParseInt(string(payload), 10, 64)
	if err != nil {
		return false
	}
	age := s.now().Sub(time.UnixMilli(issuedAt))
	return age <= s.ttl
}

// Login checks pin against the configured PIN and issues a credential.
// The comparison is constant-time so timing does not depend on how many
// leading characters match.
func (s *SessionAuth) Login(pin string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return "", ErrInvalidPin
	}
	return s.Issue(), nil
}

// TTLSeconds is the cookie max-age matching the credential lifetime.
func (s *SessionAuth) TTLSeconds() int {
	return int(s.ttl / time.Second)
}
