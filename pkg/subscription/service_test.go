// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package subscription -destination ./mock_subscription.go -source=./interfaces.go

func newServiceWithMocks(t *testing.T) (*Service, *MockTenantStorageInterface, *MockUserStorageInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockTenants := NewMockTenantStorageInterface(ctrl)
	mockUsers := NewMockUserStorageInterface(ctrl)

	s := NewService(mockTenants, mockUsers, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())

	return s, mockTenants, mockUsers
}

func TestService_ExtendSubscription(t *testing.T) {
	dbErr := errors.New("db error")
	extended := &types.Tenant{ID: "tenant-1", SubscriptionActive: true}

	testCases := []struct {
		name        string
		setupMocks  func(*MockTenantStorageInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(mockTenants *MockTenantStorageInterface) {
				mockTenants.EXPECT().ExtendSubscription(gomock.Any(), "tenant-1", 30).Return(extended, nil)
			},
		},
		{
			name: "storage error",
			setupMocks: func(mockTenants *MockTenantStorageInterface) {
				mockTenants.EXPECT().ExtendSubscription(gomock.Any(), "tenant-1", 30).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, mockTenants, _ := newServiceWithMocks(t)
			tc.setupMocks(mockTenants)

			tenant, err := s.ExtendSubscription(context.Background(), "tenant-1", 30)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tenant.ID != "tenant-1" {
				t.Errorf("expected tenant-1, got %q", tenant.ID)
			}
		})
	}
}

func TestService_ActivateFromExternalPurchase(t *testing.T) {
	expiry := time.Now().UTC().AddDate(0, 1, 0)
	activated := &types.Tenant{ID: "tenant-1", SubscriptionActive: true, CurrentPeriodEnd: expiry}

	testCases := []struct {
		name        string
		setupMocks  func(*MockTenantStorageInterface, *MockUserStorageInterface)
		wantErr     bool
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(mockTenants *MockTenantStorageInterface, mockUsers *MockUserStorageInterface) {
				mockUsers.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(&types.User{Username: "alice", TenantID: "tenant-1"}, nil)
				mockTenants.EXPECT().ActivateSubscription(gomock.Any(), "tenant-1", expiry).Return(activated, nil)
			},
		},
		{
			name: "unknown subject",
			setupMocks: func(mockTenants *MockTenantStorageInterface, mockUsers *MockUserStorageInterface) {
				mockUsers.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
			},
			wantErr: true,
		},
		{
			name: "subject without tenant",
			setupMocks: func(mockTenants *MockTenantStorageInterface, mockUsers *MockUserStorageInterface) {
				mockUsers.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(&types.User{Username: "alice"}, nil)
			},
			wantErr:     true,
			expectedErr: ErrNoTenant,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, mockTenants, mockUsers := newServiceWithMocks(t)
			tc.setupMocks(mockTenants, mockUsers)

			tenant, err := s.ActivateFromExternalPurchase(context.Background(), "alice", "premium_monthly", expiry)

			if tc.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				if tc.expectedErr != nil && !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tenant.CurrentPeriodEnd.Equal(expiry) {
				t.Errorf("expected period end %s, got %s", expiry, tenant.CurrentPeriodEnd)
			}
		})
	}
}

func TestService_StatusForSubject(t *testing.T) {
	now := time.Now().UTC()
	tenant := &types.Tenant{
		ID:                 "tenant-1",
		TrialEnd:           now.AddDate(0, 0, -30),
		SubscriptionActive: true,
		CurrentPeriodEnd:   now.AddDate(0, 0, 10),
	}

	s, mockTenants, mockUsers := newServiceWithMocks(t)
	mockUsers.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(&types.User{Username: "alice", TenantID: "tenant-1"}, nil)
	mockTenants.EXPECT().GetTenantByID(gomock.Any(), "tenant-1").Return(tenant, nil)

	got, state, err := s.StatusForSubject(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "tenant-1" {
		t.Errorf("expected tenant-1, got %q", got.ID)
	}
	if state.Status != types.SubscriptionActive || !state.Allowed {
		t.Errorf("expected allowed ACTIVE state, got %+v", state)
	}
}

func TestService_StatusForSubject_NoTenant(t *testing.T) {
	s, _, mockUsers := newServiceWithMocks(t)
	mockUsers.EXPECT().GetUserByUsername(gomock.Any(), "bob").Return(&types.User{Username: "bob"}, nil)

	_, _, err := s.StatusForSubject(context.Background(), "bob")
	if !errors.Is(err, ErrNoTenant) {
		t.Errorf("expected ErrNoTenant, got %v", err)
	}
}
