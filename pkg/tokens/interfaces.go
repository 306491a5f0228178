// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tokens

import (
	"context"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

type ServiceInterface interface {
	// Issue creates a signed access/refresh token pair for the subject.
	Issue(ctx context.Context, subject string) (*types.TokenPair, error)
	// Validate verifies signature, expiry and kind of a raw token and
	// returns the subject. Malformed, tampered and expired tokens all
	// yield ok=false with no further distinction, to avoid oracle leakage.
	Validate(ctx context.Context, rawToken string, kind Kind) (subject string, ok bool)

	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
