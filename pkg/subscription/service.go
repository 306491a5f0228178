// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// ErrNoTenant marks a known subject that is not associated with any tenant,
// so callers can tell it apart from a failed lookup.
var ErrNoTenant = errors.New("subject has no tenant")

// Service is the billing event source. It applies externally triggered
// billing mutations to tenant records; the gating pipeline only ever reads
// the results.
type Service struct {
	tenants TenantStorageInterface
	users   UserStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	tenants TenantStorageInterface,
	users UserStorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		tenants: tenants,
		users:   users,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// ExtendSubscription pushes the tenant's paid period out by additionalDays.
// Invoked on confirmed payment-provider checkouts.
func (s *Service) ExtendSubscription(ctx context.Context, tenantID string, additionalDays int) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.Service.ExtendSubscription")
	defer span.End()

	tenant, err := s.tenants.ExtendSubscription(ctx, tenantID, additionalDays)
	if err != nil {
		return nil, fmt.Errorf("failed to extend subscription: %w", err)
	}

	s.logger.Infof("extended subscription for tenant %s by %d days, active until %s", tenantID, additionalDays, tenant.CurrentPeriodEnd)
	return tenant, nil
}

// ActivateFromExternalPurchase activates the subject's tenant until the
// expiry reported by an external store purchase verification. Re-delivery
// of the same purchase converges on the same period end.
func (s *Service) ActivateFromExternalPurchase(ctx context.Context, subject, productID string, expiry time.Time) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.Service.ActivateFromExternalPurchase")
	defer span.End()

	user, err := s.users.GetUserByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject %q: %w", subject, err)
	}

	if user.TenantID == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoTenant, subject)
	}

	tenant, err := s.tenants.ActivateSubscription(ctx, user.TenantID, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	s.logger.Infof("activated subscription for tenant %s from purchase %s until %s", user.TenantID, productID, expiry)
	return tenant, nil
}

// StatusForSubject resolves the current billing state for an authenticated
// subject, for the billing status endpoint.
func (s *Service) StatusForSubject(ctx context.Context, subject string) (*types.Tenant, types.SubscriptionState, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.Service.StatusForSubject")
	defer span.End()

	user, err := s.users.GetUserByUsername(ctx, subject)
	if err != nil {
		return nil, types.SubscriptionState{}, fmt.Errorf("failed to resolve subject %q: %w", subject, err)
	}

	if user.TenantID == "" {
		return nil, types.SubscriptionState{}, fmt.Errorf("%w: %q", ErrNoTenant, subject)
	}

	tenant, err := s.tenants.GetTenantByID(ctx, user.TenantID)
	if err != nil {
		return nil, types.SubscriptionState{}, fmt.Errorf("failed to load tenant %q: %w", user.TenantID, err)
	}

	return tenant, Resolve(tenant, time.Now().UTC()), nil
}
