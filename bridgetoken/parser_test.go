package bridgetoken

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestParse_RoundTrip recovers exactly the issued claims
func TestParse_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "sensor preset",
			req:  mustResolve(t, Params{ClientID: "sensor-01", Role: RoleSensor, ExpiryHours: 24}),
		},
		{
			name: "unknown role",
			req:  mustResolve(t, Params{ClientID: "dev", Role: "foo", ExpiryHours: 0.5}),
		},
		{
			name: "explicit overrides",
			req: mustResolve(t, Params{
				ClientID:    "line-1",
				Role:        RoleSensor,
				Publish:     []string{"x.>"},
				Subscribe:   []string{"a.*", "b.>"},
				ExpiryHours: 2,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, issued, err := issuer.Issue(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Failed to issue token: %v", err)
			}

			decoded, err := Parse(token, issuer.Config())
			if err != nil {
				t.Fatalf("Failed to parse token: %v", err)
			}
			if !reflect.DeepEqual(decoded, issued) {
				t.Errorf("Round trip mismatch:\nissued  %+v\ndecoded %+v", issued, decoded)
			}
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	issuedAt := time.Unix(1700000000, 0)
	issuer := newTestIssuer(t, WithClock(fixedClock(issuedAt)))
	token, _, err := issuer.Issue(context.Background(), Request{ClientID: "dev", Role: RoleAdmin, ExpiryHours: 1})
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	rsToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "dev",
		"exp": issuedAt.Add(time.Hour).Unix(),
	}).SignedString(rsaKey)
	if err != nil {
		t.Fatalf("Failed to sign RS256 token: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "dev",
		"exp": issuedAt.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to sign none token: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		opts     []Option
		wantCode ErrorCode
	}{
		{
			name:     "different secret",
			token:    token,
			opts:     []Option{WithSecret([]byte("another-secret-key-that-is-32-bytes-long")), WithClock(fixedClock(issuedAt))},
			wantCode: ErrInvalidSignature,
		},
		{
			name:     "expired",
			token:    token,
			opts:     []Option{WithSecret(testSecret), WithClock(fixedClock(issuedAt.Add(2 * time.Hour)))},
			wantCode: ErrExpired,
		},
		{
			name:     "audience mismatch",
			token:    token,
			opts:     []Option{WithSecret(testSecret), WithAudience("other"), WithClock(fixedClock(issuedAt))},
			wantCode: ErrClaimMismatch,
		},
		{
			name:     "issuer mismatch",
			token:    token,
			opts:     []Option{WithSecret(testSecret), WithIssuer("other"), WithClock(fixedClock(issuedAt))},
			wantCode: ErrClaimMismatch,
		},
		{
			name:     "RS256 token",
			token:    rsToken,
			opts:     []Option{WithSecret(testSecret), WithClock(fixedClock(issuedAt))},
			wantCode: ErrUnsupportedAlgorithm,
		},
		{
			name:     "none algorithm",
			token:    noneToken,
			opts:     []Option{WithSecret(testSecret), WithClock(fixedClock(issuedAt))},
			wantCode: ErrUnsupportedAlgorithm,
		},
		{
			name:     "garbage",
			token:    "not.a.token",
			opts:     []Option{WithSecret(testSecret)},
			wantCode: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.opts...)
			if err != nil {
				t.Fatalf("Failed to create config: %v", err)
			}

			_, err = Parse(tt.token, cfg)
			if err == nil {
				t.Fatalf("Expected error %s, got nil", tt.wantCode)
			}
			if CodeOf(err) != tt.wantCode {
				t.Errorf("Expected error code %s, got %s (%v)", tt.wantCode, CodeOf(err), err)
			}
		})
	}
}

func mustResolve(t *testing.T, p Params) Request {
	t.Helper()
	req, err := p.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve params: %v", err)
	}
	return req
}
