package bridgetoken

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Request is a fully resolved issuance request, see Params.Resolve
type Request struct {
	ClientID    string
	Role        string
	Publish     []string
	Subscribe   []string
	ExpiryHours float64
}

// Issuer signs bridge tokens with a shared configuration.
// It holds no mutable state and is safe for concurrent use.
type Issuer struct {
	cfg *Config
}

// NewIssuer returns an issuer for cfg
func NewIssuer(cfg *Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Config returns the issuer configuration
func (i *Issuer) Config() *Config {
	return i.cfg
}

// Issue builds the claims for req, signs them and logs the outcome.
// The request ID for the log event is taken from ctx or generated.
func (i *Issuer) Issue(ctx context.Context, req Request) (string, Claims, error) {
	requestID, ok := GetRequestID(ctx)
	if !ok || requestID == "" {
		requestID = uuid.New().String()
	}

	token, claims, err := issue(req, i.cfg.secret, i.cfg.issuer, i.cfg.audience, i.cfg.now())

	event := IssuanceEvent{
		Timestamp: time.Now(),
		RequestID: requestID,
		Subject:   req.ClientID,
		Role:      req.Role,
		Algorithm: jwt.SigningMethodHS256.Alg(),
	}
	if err != nil {
		event.EventType = "failed"
		event.FailureReason = string(CodeOf(err))
	} else {
		event.EventType = "issued"
		event.TokenPreview = token
		event.ExpiresAt = claims.Expiry()
	}
	logIssuanceEvent(i.cfg.logger, event)

	return token, claims, err
}

// IssueToken builds and signs a token without a Config.
// Permissions are used as given; resolve them first with ResolvePermissions.
func IssueToken(clientID, role string, publish, subscribe []string, expiryHours float64,
	secret, issuer, audience string, now time.Time) (string, Claims, error) {
	req := Request{
		ClientID:    clientID,
		Role:        role,
		Publish:     publish,
		Subscribe:   subscribe,
		ExpiryHours: expiryHours,
	}
	return issue(req, []byte(secret), issuer, audience, now)
}

func issue(req Request, secret []byte, issuer, audience string, now time.Time) (string, Claims, error) {
	if len(secret) == 0 {
		return "", Claims{}, NewError(ErrSigning, "signing secret is empty", nil)
	}

	claims, err := buildClaims(req, issuer, audience, now)
	if err != nil {
		return "", Claims{}, err
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", Claims{}, NewError(ErrSigning, "failed to sign token", err)
	}
	return token, claims, nil
}

// buildClaims assembles the payload; exp is iat plus the rounded expiry
func buildClaims(req Request, issuer, audience string, now time.Time) (Claims, error) {
	ttl, err := expirySeconds(req.ExpiryHours)
	if err != nil {
		return Claims{}, err
	}

	iat := now.Unix()
	if iat > 0 && ttl > math.MaxInt64-iat {
		return Claims{}, NewError(ErrInvalidExpiry, fmt.Sprintf("expiry of %v hours overflows the exp claim", req.ExpiryHours), nil)
	}
	return Claims{
		Subject:   req.ClientID,
		Role:      req.Role,
		Publish:   nonNil(req.Publish),
		Subscribe: nonNil(req.Subscribe),
		Issuer:    issuer,
		Audience:  audience,
		IssuedAt:  iat,
		ExpiresAt: iat + ttl,
	}, nil
}

// expirySeconds converts fractional hours to whole seconds, at least one
func expirySeconds(hours float64) (int64, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0, NewError(ErrInvalidExpiry, fmt.Sprintf("expiry hours must be a positive number, got %v", hours), nil)
	}
	sec := math.Round(hours * 3600)
	if sec < 1 {
		return 0, NewError(ErrInvalidExpiry, fmt.Sprintf("expiry of %v hours is shorter than one second", hours), nil)
	}
	if sec >= float64(math.MaxInt64) {
		return 0, NewError(ErrInvalidExpiry, fmt.Sprintf("expiry of %v hours does not fit in int64 seconds", hours), nil)
	}
	return int64(sec), nil
}

// nonNil keeps empty permission lists encoded as [] rather than null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
