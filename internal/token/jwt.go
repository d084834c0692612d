package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"calling-gateway/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// contentType marks the token as a Twilio first-party access token.
const contentType = "twilio-fpa;v=1"

// GrantTTL is the validity window of every issued grant.
const GrantTTL = time.Hour

type Manager struct {
	accountSID string
	keySID     string
	secret     []byte
	appSID     string
	ttl        time.Duration
}

func NewManager(cfg config.TwilioConfig) (*Manager, error) {
	if cfg.AccountSID == "" {
		return nil, errors.New("token: account SID is required")
	}
	if cfg.APIKeySID == "" || cfg.APIKeySecret == "" {
		return nil, errors.New("token: API key SID and secret are required")
	}
	if cfg.AppSID == "" {
		return nil, errors.New("token: application SID is required")
	}

	return &Manager{
		accountSID: cfg.AccountSID,
		keySID:     cfg.APIKeySID,
		secret:     []byte(cfg.APIKeySecret),
		appSID:     cfg.AppSID,
		ttl:        GrantTTL,
	}, nil
}

// TTLSeconds is the expires_in value reported alongside issued grants.
func (m *Manager) TTLSeconds() int {
	return int(m.ttl / time.Second)
}

// Issue signs an outbound-voice-only access token for identity.
// Concurrent calls are independent; identical identities produce
// independent grants.
func (m *Manager) Issue(now time.Time, identity string) (string, error) {
	if identity == "" {
		return "", errors.New("token: identity is required")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        fmt.Sprintf("%s-%d", m.keySID, now.Unix()),
			Issuer:    m.keySID,
			Subject:   m.accountSID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Grants: Grants{
			Identity: identity,
			Voice: VoiceGrant{
				Outgoing: OutgoingGrant{ApplicationSID: m.appSID},
				Incoming: IncomingGrant{Allow: false},
			},
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["cty"] = contentType
	return t.SignedString(m.secret)
}

// Decode parses and validates a previously issued grant. The provider is
// the real verifier; this exists for diagnostics and tests.
func (m *Manager) Decode(tokenString string, now time.Time) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	if claims.Grants.Identity == "" {
		return Claims{}, errors.New("token: identity missing in grants")
	}
	return claims, nil
}

// DeriveIdentity labels a calling session when the client supplies no
// identity of its own. No uniqueness is enforced.
func DeriveIdentity(now time.Time) string {
	return "caller_" + strconv.FormatInt(now.Unix(), 10)
}
