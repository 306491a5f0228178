// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tokens

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
)

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) *Service {
	t.Helper()

	s, err := NewService("test-secret", accessTTL, refreshTTL, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}
	return s
}

func TestNewService_Validation(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		accessTTL  time.Duration
		refreshTTL time.Duration
		wantErr    bool
	}{
		{name: "valid", secret: "s", accessTTL: 30 * time.Minute, refreshTTL: 14 * 24 * time.Hour},
		{name: "empty secret", secret: "", accessTTL: time.Minute, refreshTTL: time.Hour, wantErr: true},
		{name: "access not shorter than refresh", secret: "s", accessTTL: time.Hour, refreshTTL: time.Hour, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.secret, tt.accessTTL, tt.refreshTTL, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_IssueAndValidate(t *testing.T) {
	s := newTestService(t, 30*time.Minute, 14*24*time.Hour)
	ctx := context.Background()

	pair, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh token must differ")
	}

	subject, ok := s.Validate(ctx, pair.AccessToken, KindAccess)
	if !ok || subject != "alice" {
		t.Errorf("expected valid access token for alice, got subject %q ok %v", subject, ok)
	}

	subject, ok = s.Validate(ctx, pair.RefreshToken, KindRefresh)
	if !ok || subject != "alice" {
		t.Errorf("expected valid refresh token for alice, got subject %q ok %v", subject, ok)
	}
}

func TestService_Issue_PairsAreUnique(t *testing.T) {
	s := newTestService(t, 30*time.Minute, 14*24*time.Hour)
	ctx := context.Background()

	// Both calls land within the same second, where iat and exp alone
	// would not tell the pairs apart.
	first, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.AccessToken == second.AccessToken {
		t.Error("expected re-issued access token to differ from the previous one")
	}
	if first.RefreshToken == second.RefreshToken {
		t.Error("expected re-issued refresh token to differ from the previous one")
	}
}

func TestService_Validate_KindMismatch(t *testing.T) {
	s := newTestService(t, 30*time.Minute, 14*24*time.Hour)
	ctx := context.Background()

	pair, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Validate(ctx, pair.AccessToken, KindRefresh); ok {
		t.Error("access token must not validate as refresh token")
	}
	if _, ok := s.Validate(ctx, pair.RefreshToken, KindAccess); ok {
		t.Error("refresh token must not validate as access token")
	}
}

func TestService_Validate_Invalid(t *testing.T) {
	s := newTestService(t, 30*time.Minute, 14*24*time.Hour)
	ctx := context.Background()

	pair, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flip a byte in the signature segment.
	parts := strings.Split(pair.AccessToken, ".")
	if len(parts) != 3 {
		t.Fatalf("expected a three segment JWT, got %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "garbage", raw: "not-a-token"},
		{name: "tampered signature", raw: tampered},
		{name: "signed with other secret", raw: otherSecretToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if subject, ok := s.Validate(ctx, tt.raw, KindAccess); ok {
				t.Errorf("expected invalid, got subject %q", subject)
			}
		})
	}
}

func TestService_Validate_Expired(t *testing.T) {
	s := newTestService(t, time.Nanosecond, time.Hour)
	ctx := context.Background()

	pair, err := s.Issue(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, ok := s.Validate(ctx, pair.AccessToken, KindAccess); ok {
		t.Error("expected expired access token to be invalid")
	}

	// The long-lived refresh token from the same pair is still good.
	if subject, ok := s.Validate(ctx, pair.RefreshToken, KindRefresh); !ok || subject != "alice" {
		t.Errorf("expected refresh token to remain valid, got subject %q ok %v", subject, ok)
	}
}

func otherSecretToken(t *testing.T) string {
	t.Helper()

	other, err := NewService("other-secret", 30*time.Minute, time.Hour, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pair, err := other.Issue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return pair.AccessToken
}
