// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// TenantStorageInterface is the subset of the control-plane storage the
// guard and the billing event service depend on.
type TenantStorageInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ExtendSubscription(ctx context.Context, tenantID string, additionalDays int) (*types.Tenant, error)
	ActivateSubscription(ctx context.Context, tenantID string, until time.Time) (*types.Tenant, error)
}

// UserStorageInterface maps an authenticated subject to its tenant.
// It is a subset of the internal/storage interface.
type UserStorageInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
}

// ServiceInterface is the billing event source: idempotent-by-intent
// mutations of the tenant billing record, invoked asynchronously (payment
// webhook, mobile purchase verification) outside the gating pipeline.
type ServiceInterface interface {
	ExtendSubscription(ctx context.Context, tenantID string, additionalDays int) (*types.Tenant, error)
	ActivateFromExternalPurchase(ctx context.Context, subject, productID string, expiry time.Time) (*types.Tenant, error)
	StatusForSubject(ctx context.Context, subject string) (*types.Tenant, types.SubscriptionState, error)
}
