package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoToken          = errors.New("token: no token provided")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrMissingClaim     = errors.New("token: missing camera claim")
	ErrExpired          = errors.New("token: expired")
)

// Verifier checks HMAC-signed capability tokens. With an empty secret every
// token is rejected: signatures cannot be checked, so nothing is trusted.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// compile-time check: *Verifier must satisfy port.TokenVerifier
var _ port.TokenVerifier = (*Verifier)(nil)

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

func (v *Verifier) Verify(raw string) (port.Claims, error) {
	if raw == "" {
		return port.Claims{}, ErrNoToken
	}

	if len(v.secret) == 0 {
		// Payload may be logged for diagnostics but is never trusted.
		log.Printf("rejecting token, no signing secret configured (unverified payload: %s)", unverifiedPayload(raw))
		return port.Claims{}, ErrInvalidSignature
	}

	claims := jwt.MapClaims{}
	tok, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return port.Claims{}, ErrExpired
		}
		return port.Claims{}, ErrInvalidSignature
	}
	if !tok.Valid {
		return port.Claims{}, ErrInvalidSignature
	}

	cameraID := asString(claims["camera_id"])
	if cameraID == "" {
		return port.Claims{}, ErrMissingClaim
	}

	noCache, _ := claims["no_cache"].(bool)

	return port.Claims{CameraID: cameraID, NoCache: noCache}, nil
}

// asString coerces the camera claim to a non-empty identifier. Tokens
// minted upstream carry the camera id either as a string or a number.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatInt(int64(x), 10)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}

// unverifiedPayload decodes the claims segment without any signature check.
func unverifiedPayload(raw string) string {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "<malformed>"
	}
	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "<undecodable>"
	}
	return string(decoded)
}
