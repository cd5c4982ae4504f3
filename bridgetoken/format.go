package bridgetoken

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format selects how an issued token is printed
type Format string

const (
	FormatFull  Format = "full"
	FormatToken Format = "token"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatFull, FormatToken, FormatJSON:
		return f, nil
	}
	return "", NewError(ErrInvalidFormat, fmt.Sprintf("unknown format %q (available: full, token, json)", s), nil)
}

// Result is the machine-readable issuance output
type Result struct {
	Token   string `json:"token"`
	Payload Claims `json:"payload"`
}

// Write prints token and claims to w in the given format.
// Only the token and json formats are stable for scripting.
func Write(w io.Writer, f Format, token string, claims Claims) error {
	switch f {
	case FormatToken:
		_, err := fmt.Fprintln(w, token)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Result{Token: token, Payload: claims})
	case FormatFull:
		return writeFull(w, token, claims)
	}
	return NewError(ErrInvalidFormat, fmt.Sprintf("unknown format %q", f), nil)
}

func writeFull(w io.Writer, token string, claims Claims) error {
	payload, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nGenerated JWT Token\n%s\n", rule, rule)
	fmt.Fprintf(&b, "\nToken:\n%s\n\n", token)
	fmt.Fprintf(&b, "Payload:\n%s\n\n", payload)
	fmt.Fprintf(&b, "Expires: %s\n", claims.Expiry().Format(time.RFC3339))
	fmt.Fprintf(&b, "         (%d Unix timestamp)\n", claims.ExpiresAt)

	fmt.Fprintf(&b, "\n%s\nUsage Examples\n%s\n", thin, thin)

	fmt.Fprintln(&b, "\n1. Header-based auth (recommended for CLI tools):")
	fmt.Fprintf(&b, "   wscat -c ws://localhost:5000/ws -H \"Authorization: Bearer %s\"\n", token)

	fmt.Fprintln(&b, "\n2. In-band auth (for browsers):")
	fmt.Fprintln(&b, "   wscat -c ws://localhost:5000/ws")
	fmt.Fprintln(&b, "   # Then send:")
	fmt.Fprintf(&b, "   {\"type\":8,\"payload\":{\"token\":\"%s\"}}\n", token)

	fmt.Fprintln(&b, "\n3. Environment variable:")
	fmt.Fprintf(&b, "   export GATEWAY_TOKEN='%s'\n", token)
	fmt.Fprintln(&b, "   wscat -c ws://localhost:5000/ws -H \"Authorization: Bearer $GATEWAY_TOKEN\"")

	fmt.Fprintln(&b, "\n4. Test with curl (check /dev/token endpoint):")
	fmt.Fprintln(&b, "   curl -s http://localhost:5000/devices")

	_, err = io.WriteString(w, b.String())
	return err
}
