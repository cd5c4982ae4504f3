package bridgetoken

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleClaims() Claims {
	return Claims{
		Subject:   "sensor-01",
		Role:      RoleSensor,
		Publish:   []string{"telemetry.sensor-01.>", "factory.>"},
		Subscribe: []string{"commands.sensor-01.>"},
		Issuer:    DefaultIssuer,
		Audience:  DefaultAudience,
		IssuedAt:  1700000000,
		ExpiresAt: 1700086400,
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"full", "token", "json", " JSON "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", in, err)
		}
	}
	if _, err := ParseFormat("yaml"); CodeOf(err) != ErrInvalidFormat {
		t.Errorf("Expected %s, got %v", ErrInvalidFormat, err)
	}
}

func TestWrite_Token(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatToken, "a.b.c", sampleClaims()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "a.b.c\n" {
		t.Errorf("Expected only the token, got %q", buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, "a.b.c", sampleClaims()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var out struct {
		Token   string                     `json:"token"`
		Payload map[string]json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, buf.String())
	}
	if out.Token != "a.b.c" {
		t.Errorf("Expected token a.b.c, got %q", out.Token)
	}
	if string(out.Payload["pub"]) != `["telemetry.sensor-01.>","factory.>"]` {
		t.Errorf("Unexpected pub: %s", out.Payload["pub"])
	}
	if string(out.Payload["exp"]) != "1700086400" {
		t.Errorf("Unexpected exp: %s", out.Payload["exp"])
	}
}

func TestWrite_Full(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatFull, "a.b.c", sampleClaims()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Generated JWT Token",
		"Token:\na.b.c\n",
		`"sub": "sensor-01"`,
		"Expires: 2023-11-15T22:13:20Z",
		"(1700086400 Unix timestamp)",
		`-H "Authorization: Bearer a.b.c"`,
		`{"type":8,"payload":{"token":"a.b.c"}}`,
		"export GATEWAY_TOKEN='a.b.c'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("xml"), "a.b.c", sampleClaims()); CodeOf(err) != ErrInvalidFormat {
		t.Errorf("Expected %s, got %v", ErrInvalidFormat, err)
	}
}
