package bridgetoken

import (
	"fmt"
	"strconv"
	"strings"
)

// Params are the caller-supplied issuance parameters shared by every front end.
// Publish and Subscribe are overrides: nil means "use the role preset".
type Params struct {
	ClientID    string
	Role        string
	Publish     []string
	Subscribe   []string
	ExpiryHours float64
}

// Resolve validates p and expands the role preset into a Request.
// An empty role resolves to sensor; any other unknown role keeps its name
// and gets the empty custom permissions.
func (p Params) Resolve() (Request, error) {
	clientID := p.ClientID
	if strings.TrimSpace(clientID) == "" {
		return Request{}, NewError(ErrMissingClientID, "client id is required", nil)
	}
	if clientID != strings.TrimSpace(clientID) {
		return Request{}, NewError(ErrInvalidClientID, fmt.Sprintf("client id %q has surrounding whitespace", clientID), nil)
	}

	if _, err := expirySeconds(p.ExpiryHours); err != nil {
		return Request{}, err
	}

	role := p.Role
	if role == "" {
		role = RoleSensor
	}

	pub, sub := ResolvePermissions(role, p.Publish, p.Subscribe, clientID)
	return Request{
		ClientID:    clientID,
		Role:        role,
		Publish:     pub,
		Subscribe:   sub,
		ExpiryHours: p.ExpiryHours,
	}, nil
}

// ParseExpiryHours parses a user-entered expiry. Malformed input is an error.
func ParseExpiryHours(s string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, NewError(ErrInvalidExpiry, fmt.Sprintf("invalid expiry hours %q", s), err)
	}
	if _, err := expirySeconds(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// SplitPatterns splits a comma-separated pattern list, dropping blanks.
// The result is never nil, so it always acts as an explicit override.
func SplitPatterns(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseRoleChoice maps a menu answer to a role: a 1-based preset index,
// a preset name, any other non-empty string as-is, or sensor when empty.
func ParseRoleChoice(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return RoleSensor
	}
	if !isDigits(input) {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(presets) {
		return presets[n-1].Name
	}
	return input
}

// isDigits reports whether s is only ASCII digits, so "+1" stays a role name
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
