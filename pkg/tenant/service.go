// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// defaultTrialDays is the grace period a new tenant gets before billing
// gating kicks in.
const defaultTrialDays = 14

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage     StorageInterface
	provisioner ProvisionerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	provisioner ProvisionerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:     storage,
		provisioner: provisioner,
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}

func (s *Service) CreateTenant(ctx context.Context, name string, trialDays int) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	if trialDays <= 0 {
		trialDays = defaultTrialDays
	}

	created, err := s.storage.CreateTenant(ctx, &types.Tenant{
		Name:     name,
		TrialEnd: time.Now().UTC().AddDate(0, 0, trialDays),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return created, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

func (s *Service) CreateUser(ctx context.Context, tenantID, username, password, role string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateUser")
	defer span.End()

	if _, err := s.storage.GetTenantByID(ctx, tenantID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, &types.User{
		Username:     username,
		PasswordHash: string(hash),
		TenantID:     tenantID,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) RegisterStore(ctx context.Context, tenantID, dsn string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.RegisterStore")
	defer span.End()

	if _, err := s.storage.GetTenantByID(ctx, tenantID); err != nil {
		return err
	}

	return s.provisioner.RegisterTenantStore(ctx, tenantID, dsn)
}
