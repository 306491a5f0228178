// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package datasource

import (
	"context"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
)

// RegistryInterface routes requests to per-tenant database handles. Resolve
// reads the routing key from the request context only, never from shared
// state, so concurrent requests for different tenants cannot observe each
// other's pools.
type RegistryInterface interface {
	Register(tenantID string, client db.DBClientInterface) db.DBClientInterface
	Resolve(ctx context.Context) (db.DBClientInterface, error)
	TenantIDs() []string
}

// ProvisionerInterface builds and registers a tenant's store from its DSN.
type ProvisionerInterface interface {
	RegisterTenantStore(ctx context.Context, tenantID, dsn string) error
}
