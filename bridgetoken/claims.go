package bridgetoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload signed into a bridge token.
// Field names are part of the gateway contract and must not change.
type Claims struct {
	Subject   string   `json:"sub"`       // Client identifier
	Role      string   `json:"role"`      // Role name as given, even when unknown
	Publish   []string `json:"pub"`       // Publish topic patterns
	Subscribe []string `json:"subscribe"` // Subscribe topic patterns
	Issuer    string   `json:"iss"`
	Audience  string   `json:"aud"`
	IssuedAt  int64    `json:"iat"` // Unix seconds
	ExpiresAt int64    `json:"exp"` // Unix seconds
}

var _ jwt.Claims = Claims{}

// Expiry returns the expiration time in UTC
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0).UTC()
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return unixDate(c.ExpiresAt), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return unixDate(c.IssuedAt), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c Claims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c Claims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	if c.Audience == "" {
		return nil, nil
	}
	return jwt.ClaimStrings{c.Audience}, nil
}

// unixDate treats zero as an absent claim
func unixDate(sec int64) *jwt.NumericDate {
	if sec == 0 {
		return nil
	}
	return jwt.NewNumericDate(time.Unix(sec, 0))
}
