// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package datasource

import (
	"context"
	"fmt"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
)

// Provisioner builds per-tenant database clients and hands them to the
// registry. Pool sizing and tracing settings are shared across tenant stores.
type Provisioner struct {
	registry RegistryInterface
	template db.Config

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ProvisionerInterface = (*Provisioner)(nil)

func NewProvisioner(registry RegistryInterface, template db.Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Provisioner {
	return &Provisioner{
		registry: registry,
		template: template,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// RegisterTenantStore connects to the tenant's database and registers the
// resulting client as the tenant's data source. A previously registered
// client for the same tenant is closed after the swap, so requests routed
// mid-registration see either the old or the new handle, never a closed one
// before the swap completes.
func (p *Provisioner) RegisterTenantStore(ctx context.Context, tenantID, dsn string) error {
	ctx, span := p.tracer.Start(ctx, "datasource.Provisioner.RegisterTenantStore")
	defer span.End()

	if tenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if dsn == "" {
		return fmt.Errorf("dsn is required")
	}

	cfg := p.template
	cfg.DSN = dsn

	client, err := db.NewDBClient(cfg, p.tracer, p.monitor, p.logger)
	if err != nil {
		return fmt.Errorf("failed to provision store for tenant %s: %w", tenantID, err)
	}

	if previous := p.registry.Register(tenantID, client); previous != nil {
		p.logger.Infof("replacing data source for tenant %s", tenantID)
		previous.Close()
	}

	p.logger.Security().TenantStoreRegistered(tenantID)

	return nil
}
