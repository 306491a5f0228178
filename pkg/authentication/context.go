// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context with the given principal derived from the parent context.
func WithPrincipal(ctx context.Context, p *types.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Returns nil and false if no identity was established for the request.
func PrincipalFromContext(ctx context.Context) (*types.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*types.Principal)
	return p, ok && p != nil
}
