// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
)

func newAPIWithMock(t *testing.T) (*chi.Mux, *MockServiceInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockServiceInterface(ctrl)

	mux := chi.NewMux()
	NewAPI(mockService, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger()).RegisterEndpoints(mux)

	return mux, mockService
}

func TestAPI_Webhook(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name: "checkout completion extends the tenant",
			body: `{"type":"checkout.completed","tenant_id":"tenant-1","additional_days":30}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().ExtendSubscription(gomock.Any(), "tenant-1", 30).Return(&types.Tenant{ID: "tenant-1"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "verified purchase activates the subject's tenant",
			body: `{"type":"purchase.verified","subject":"alice","product_id":"premium_monthly","expiry":"2027-01-01T00:00:00Z"}`,
			setupMocks: func(m *MockServiceInterface) {
				expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
				m.EXPECT().ActivateFromExternalPurchase(gomock.Any(), "alice", "premium_monthly", expiry).Return(&types.Tenant{ID: "tenant-1"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "unknown event type is acknowledged",
			body:               `{"type":"invoice.created"}`,
			setupMocks:         func(m *MockServiceInterface) {},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "malformed body",
			body:               `{not json`,
			setupMocks:         func(m *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "checkout without tenant",
			body:               `{"type":"checkout.completed","additional_days":30}`,
			setupMocks:         func(m *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown tenant",
			body: `{"type":"checkout.completed","tenant_id":"ghost","additional_days":30}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().ExtendSubscription(gomock.Any(), "ghost", 30).Return(nil, storage.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockService := newAPIWithMock(t)
			tt.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/billing/webhook", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAPI_Status(t *testing.T) {
	mux, mockService := newAPIWithMock(t)

	mockService.EXPECT().StatusForSubject(gomock.Any(), "alice").Return(
		&types.Tenant{ID: "tenant-1"},
		types.SubscriptionState{Status: types.SubscriptionTrial, DaysLeft: 7, Allowed: true},
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/billing/status", nil)
	req = req.WithContext(authentication.WithPrincipal(req.Context(), &types.Principal{Subject: "alice"}))
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	expected := `{"tenant_id":"tenant-1","status":"TRIAL","days_left":7,"allowed":true}` + "\n"
	if rr.Body.String() != expected {
		t.Errorf("expected body %q, got %q", expected, rr.Body.String())
	}
}

func TestAPI_Status_NoTenant(t *testing.T) {
	mux, mockService := newAPIWithMock(t)

	mockService.EXPECT().StatusForSubject(gomock.Any(), "bob").Return(
		nil, types.SubscriptionState{}, fmt.Errorf("%w: %q", ErrNoTenant, "bob"),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/billing/status", nil)
	req = req.WithContext(authentication.WithPrincipal(req.Context(), &types.Principal{Subject: "bob"}))
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestAPI_Status_Unauthenticated(t *testing.T) {
	mux, _ := newAPIWithMock(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/billing/status", nil)
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}
