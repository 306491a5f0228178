// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

// Service issues and validates HS256 signed token pairs with a process-wide
// secret. No server-side token state is kept; tokens are invalidated by
// expiry only.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	secret string,
	accessTTL, refreshTTL time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is required")
	}

	if accessTTL >= refreshTTL {
		return nil, fmt.Errorf("access TTL %s must be shorter than refresh TTL %s", accessTTL, refreshTTL)
	}

	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}, nil
}

func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *Service) Issue(ctx context.Context, subject string) (*types.TokenPair, error) {
	_, span := s.tracer.Start(ctx, "tokens.Service.Issue")
	defer span.End()

	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	access, err := s.sign(subject, KindAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(subject, KindRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &types.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) Validate(ctx context.Context, rawToken string, kind Kind) (string, bool) {
	_, span := s.tracer.Start(ctx, "tokens.Service.Validate")
	defer span.End()

	if rawToken == "" {
		return "", false
	}

	var c claims
	tok, err := jwt.ParseWithClaims(rawToken, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	// Expired, tampered and malformed tokens are deliberately
	// indistinguishable to the caller.
	if err != nil || tok == nil || !tok.Valid {
		s.logger.Debugf("token validation failed: %v", err)
		return "", false
	}

	if c.Kind != kind || c.Subject == "" {
		return "", false
	}

	return c.Subject, true
}

func (s *Service) sign(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	// iat and exp carry whole-second precision, so the jti is what keeps
	// tokens minted for the same subject within one second distinct.
	jti, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}
