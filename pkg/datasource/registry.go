// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package datasource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tenantctx"
)

// ErrTenantNotProvisioned is returned when a request carries a tenant routing
// key with no registered store. Resolution never falls back to another
// tenant's handle.
var ErrTenantNotProvisioned = errors.New("no data source registered for tenant")

// ErrNoTenantInContext is returned when Resolve is called on a context that
// never went through subscription gating.
var ErrNoTenantInContext = errors.New("no tenant routing key in request context")

type Registry struct {
	mu      sync.RWMutex
	clients map[string]db.DBClientInterface
}

var _ RegistryInterface = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]db.DBClientInterface),
	}
}

// Register installs the client as the tenant's data source and returns the
// handle it replaced, or nil if the tenant was not registered before. The
// caller owns closing the returned handle once in-flight requests drain.
func (r *Registry) Register(tenantID string, client db.DBClientInterface) db.DBClientInterface {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.clients[tenantID]
	r.clients[tenantID] = client

	return previous
}

// Resolve returns the data source for the tenant named by the request
// context.
func (r *Registry) Resolve(ctx context.Context) (db.DBClientInterface, error) {
	tenantID, ok := tenantctx.TenantFromContext(ctx)
	if !ok {
		return nil, ErrNoTenantInContext
	}

	r.mu.RLock()
	client, ok := r.clients[tenantID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotProvisioned, tenantID)
	}

	return client, nil
}

// TenantIDs lists the registered tenants, sorted for stable output.
func (r *Registry) TenantIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close closes every registered client. Intended for shutdown only.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, client := range r.clients {
		client.Close()
		delete(r.clients, id)
	}
}
