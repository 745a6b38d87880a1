// Package token decodes marketplace credentials.
//
// The client never verifies signatures: it only reads the payload to learn the
// expiry and the role. The gateway may additionally verify an HS256 signature
// when it shares the backend secret (see Verify).
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the backend puts into a credential.
type Claims struct {
	jwt.RegisteredClaims
	UserID common.ID   `json:"userId,omitempty"`
	Email  string      `json:"email,omitempty"`
	Role   common.Role `json:"role,omitempty"`
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the claims carried by tok, or nil when tok is not a
// three-segment token with a JSON object payload. Claims of an unexpected
// type are left empty instead of failing the whole token.
func Decode(tok string) *Claims {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err == nil {
		return claims
	}

	// A claim of an unexpected type must not hide the others (exp above
	// all), so fall back to reading the fields one at a time.
	claims = &Claims{}
	for name, raw := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{name: raw})
		if err != nil {
			continue
		}
		next := *claims
		if err := json.Unmarshal(one, &next); err == nil {
			*claims = next
		}
	}
	return claims
}

// IsExpired reports whether tok must be treated as expired at now.
// Undecodable tokens and tokens without an exp claim count as expired.
func IsExpired(tok string, now time.Time) bool {
	claims := Decode(tok)
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return now.After(claims.ExpiresAt.Time)
}

// ExpiresIn returns the time left until tok expires, or zero when it is
// already expired or undecodable.
func ExpiresIn(tok string, now time.Time) time.Duration {
	claims := Decode(tok)
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	left := claims.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Sign issues an HS256 token for claims.
func Sign(claims Claims, secretKey []byte) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the HS256 signature of tok and its expiry at now, and
// returns its claims. Expired tokens yield common.ErrTokenExpired, anything
// else that fails yields an error wrapping common.ErrInvalidToken.
func Verify(tok string, secretKey []byte, now time.Time) (*Claims, error) {
	return parse(tok, secretKey, jwt.WithExpirationRequired(), jwt.WithTimeFunc(func() time.Time { return now }))
}

// VerifySignature checks only the HS256 signature of tok. Time-based claims
// are not validated.
func VerifySignature(tok string, secretKey []byte) (*Claims, error) {
	return parse(tok, secretKey, jwt.WithoutClaimsValidation())
}

func parse(tok string, secretKey []byte, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !t.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
