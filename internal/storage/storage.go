// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const tenantColumns = "id, name, trial_end, subscription_active, current_period_end, created_at"

// Storage persists control-plane state: tenant billing records and user
// credentials. Business entities (items, reservations) live in per-tenant
// stores, see pkg/inventory.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	var newTenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "trial_end", "subscription_active", "current_period_end").
		Values(id.String(), t.Name, t.TrialEnd, t.SubscriptionActive, t.CurrentPeriodEnd).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx).
		Scan(&newTenant.ID, &newTenant.Name, &newTenant.TrialEnd, &newTenant.SubscriptionActive, &newTenant.CurrentPeriodEnd, &newTenant.CreatedAt)

	if err != nil {
		return nil, WrapDuplicateKeyError(fmt.Errorf("failed to insert tenant: %w", err), "tenant already exists")
	}

	return &newTenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "name", "trial_end", "subscription_active", "current_period_end", "created_at").
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.TrialEnd, &t.SubscriptionActive, &t.CurrentPeriodEnd, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "name", "trial_end", "subscription_active", "current_period_end", "created_at").
		From("tenants")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.TrialEnd, &t.SubscriptionActive, &t.CurrentPeriodEnd, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// ExtendSubscription pushes the current period end out by additionalDays.
// The base is the later of now and the existing period end, so extending an
// expired subscription starts counting from today rather than the past.
func (s *Storage) ExtendSubscription(ctx context.Context, tenantID string, additionalDays int) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ExtendSubscription")
	defer span.End()

	if additionalDays <= 0 {
		return nil, fmt.Errorf("additional days must be positive, got %d", additionalDays)
	}

	t, err := s.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	base := time.Now().UTC()
	if t.CurrentPeriodEnd.After(base) {
		base = t.CurrentPeriodEnd
	}
	newEnd := base.AddDate(0, 0, additionalDays)

	return s.updateBilling(ctx, tenantID, newEnd)
}

// ActivateSubscription sets the subscription active until the given time,
// regardless of previous state. Used for externally verified purchases.
func (s *Storage) ActivateSubscription(ctx context.Context, tenantID string, until time.Time) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ActivateSubscription")
	defer span.End()

	if until.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("activation expiry %s is in the past", until)
	}

	return s.updateBilling(ctx, tenantID, until)
}

func (s *Storage) updateBilling(ctx context.Context, tenantID string, periodEnd time.Time) (*types.Tenant, error) {
	var t types.Tenant
	err := s.db.Statement(ctx).
		Update("tenants").
		Set("subscription_active", true).
		Set("current_period_end", periodEnd).
		Where(sq.Eq{"id": tenantID}).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.TrialEnd, &t.SubscriptionActive, &t.CurrentPeriodEnd, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update billing record: %w", err)
	}

	return &t, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var newUser types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "username", "password_hash", "tenant_id", "role").
		Values(id.String(), u.Username, u.PasswordHash, u.TenantID, u.Role).
		Suffix("RETURNING id, username, password_hash, tenant_id, role, created_at").
		QueryRowContext(ctx).
		Scan(&newUser.ID, &newUser.Username, &newUser.PasswordHash, &newUser.TenantID, &newUser.Role, &newUser.CreatedAt)

	if err != nil {
		return nil, WrapDuplicateKeyError(fmt.Errorf("failed to insert user: %w", err), "username already taken")
	}

	return &newUser, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByUsername")
	defer span.End()

	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "username", "password_hash", "tenant_id", "role", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.TenantID, &u.Role, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}
