// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package tenantctx holds the request-scoped routing key for tenant data
// stores. The subscription guard writes it exactly once per request, before
// any persistence access; the data source registry reads it. Keeping the
// slot on the request context rather than in shared state is what keeps
// concurrent requests for different tenants from corrupting each other's
// routing.
package tenantctx

import "context"

// Define a private custom type to avoid collisions
type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenant returns a new context carrying the tenant ID.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenantID)
}

// TenantFromContext retrieves the tenant ID from the context.
// Returns an empty string and false if no tenant is set.
func TenantFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tenantContextKey).(string)
	return id, ok && id != ""
}
