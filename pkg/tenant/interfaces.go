// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
}

// ProvisionerInterface connects a tenant's dedicated database and makes it
// routable for requests carrying that tenant.
type ProvisionerInterface interface {
	RegisterTenantStore(ctx context.Context, tenantID, dsn string) error
}

type ServiceInterface interface {
	CreateTenant(ctx context.Context, name string, trialDays int) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	CreateUser(ctx context.Context, tenantID, username, password, role string) (*types.User, error)
	RegisterStore(ctx context.Context, tenantID, dsn string) error
}
