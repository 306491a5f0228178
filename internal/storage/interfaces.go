// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	ExtendSubscription(ctx context.Context, tenantID string, additionalDays int) (*types.Tenant, error)
	ActivateSubscription(ctx context.Context, tenantID string, until time.Time) (*types.Tenant, error)

	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
}
