package bridgetoken

import (
	"context"
	"testing"
)

// BenchmarkResolvePermissions measures preset lookup and expansion
func BenchmarkResolvePermissions(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ResolvePermissions(RoleSensor, nil, nil, "sensor-01")
	}
}

// BenchmarkIssue measures full claim assembly and HS256 signing
func BenchmarkIssue(b *testing.B) {
	cfg, err := NewConfig(WithSecret(testSecret))
	if err != nil {
		b.Fatalf("Failed to create config: %v", err)
	}
	issuer := NewIssuer(cfg)
	req := Request{
		ClientID:    "sensor-01",
		Role:        RoleSensor,
		Publish:     []string{"telemetry.sensor-01.>", "factory.>"},
		Subscribe:   []string{"commands.sensor-01.>"},
		ExpiryHours: 24,
	}
	ctx := WithRequestID(context.Background(), "bench")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, _, err := issuer.Issue(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParse measures HS256 verification of an issued token
func BenchmarkParse(b *testing.B) {
	cfg, _ := NewConfig(WithSecret(testSecret))
	token, _, err := NewIssuer(cfg).Issue(context.Background(), Request{ClientID: "d", Role: RoleAdmin, ExpiryHours: 1})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Parse(token, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
