package bridgetoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Parse verifies a bridge token with cfg's secret and returns its claims.
// It mirrors what the gateway checks: HS256 only, signature, exp, iss and aud.
func Parse(tokenString string, cfg *Config) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(cfg.now),
		jwt.WithExpirationRequired(),
	}
	if cfg.issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.issuer))
	}
	if cfg.audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.audience))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return signingKey(token, cfg)
	}, opts...)

	if err != nil {
		// The JWT library wraps keyfunc errors, so unwrap ours first
		var codedErr *Error
		if errors.As(err, &codedErr) {
			return Claims{}, codedErr
		}

		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, NewError(ErrExpired, "token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, NewError(ErrInvalidSignature, "invalid signature", err)
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return Claims{}, NewError(ErrClaimMismatch, "issuer or audience does not match", err)
		}
		return Claims{}, NewError(ErrMalformed, "malformed token", err)
	}

	if !token.Valid {
		return Claims{}, NewError(ErrInvalidSignature, "token is invalid", nil)
	}

	return claims, nil
}

// signingKey rejects every algorithm but HS256, including "none"
func signingKey(token *jwt.Token, cfg *Config) (interface{}, error) {
	alg, ok := token.Header["alg"].(string)
	if !ok {
		return nil, NewError(ErrMalformed, "missing algorithm in token header", nil)
	}

	if alg != jwt.SigningMethodHS256.Alg() || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, NewError(
			ErrUnsupportedAlgorithm,
			fmt.Sprintf("algorithm %s not supported (available: %s)", alg, jwt.SigningMethodHS256.Alg()),
			nil,
		)
	}

	return cfg.secret, nil
}
