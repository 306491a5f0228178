// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
)

type fakeService struct {
	item        *types.Item
	reservation *types.Reservation
	err         error

	lastReservation *types.Reservation
}

func (f *fakeService) CreateItem(_ context.Context, item *types.Item) (*types.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeService) GetItem(context.Context, string) (*types.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeService) ListItems(context.Context, int64, int64) ([]*types.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*types.Item{f.item}, nil
}

func (f *fakeService) AdjustQuantity(context.Context, string, int) (*types.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeService) DeleteItem(context.Context, string) error {
	return f.err
}

func (f *fakeService) CreateReservation(_ context.Context, r *types.Reservation) (*types.Reservation, error) {
	f.lastReservation = r
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeService) ListReservations(context.Context, string) ([]*types.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*types.Reservation{f.reservation}, nil
}

func (f *fakeService) CancelReservation(context.Context, string) (*types.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func newTestMux(service ServiceInterface) *chi.Mux {
	mux := chi.NewMux()
	NewAPI(service, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger()).RegisterEndpoints(mux)
	return mux
}

func TestAPI_CreateItem(t *testing.T) {
	item := &types.Item{ID: "item-1", SKU: "WIDGET-1", Name: "Widget", Quantity: 5, CreatedAt: time.Now().UTC()}

	tests := []struct {
		name               string
		body               string
		service            *fakeService
		expectedStatusCode int
	}{
		{
			name:               "success",
			body:               `{"sku":"WIDGET-1","name":"Widget","quantity":5}`,
			service:            &fakeService{item: item},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "missing sku",
			body:               `{"name":"Widget","quantity":5}`,
			service:            &fakeService{item: item},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "negative quantity",
			body:               `{"sku":"WIDGET-1","name":"Widget","quantity":-1}`,
			service:            &fakeService{item: item},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "malformed body",
			body:               `{not json`,
			service:            &fakeService{item: item},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "duplicate sku",
			body:               `{"sku":"WIDGET-1","name":"Widget","quantity":5}`,
			service:            &fakeService{err: storage.ErrDuplicateKey},
			expectedStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/items", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAPI_GetItem_NotFound(t *testing.T) {
	mux := newTestMux(&fakeService{err: storage.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v0/items/item-1", nil)
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestAPI_CreateReservation(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	reservation := &types.Reservation{
		ID:         "res-1",
		ItemID:     "0195d3e8-0000-7000-8000-000000000001",
		ReservedBy: "alice",
		Quantity:   2,
		StartsAt:   now,
		EndsAt:     now.Add(48 * time.Hour),
		Status:     ReservationActive,
	}
	validBody := `{"item_id":"0195d3e8-0000-7000-8000-000000000001","quantity":2,"starts_at":"2026-04-01T09:00:00Z","ends_at":"2026-04-03T09:00:00Z"}`

	tests := []struct {
		name               string
		body               string
		authenticated      bool
		service            *fakeService
		expectedStatusCode int
	}{
		{
			name:               "success",
			body:               validBody,
			authenticated:      true,
			service:            &fakeService{reservation: reservation},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "unauthenticated",
			body:               validBody,
			service:            &fakeService{reservation: reservation},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "window ends before it starts",
			body:               `{"item_id":"0195d3e8-0000-7000-8000-000000000001","quantity":2,"starts_at":"2026-04-03T09:00:00Z","ends_at":"2026-04-01T09:00:00Z"}`,
			authenticated:      true,
			service:            &fakeService{reservation: reservation},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "insufficient stock",
			body:               validBody,
			authenticated:      true,
			service:            &fakeService{err: ErrInsufficientStock},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:               "unknown item",
			body:               validBody,
			authenticated:      true,
			service:            &fakeService{err: storage.ErrNotFound},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/reservations", strings.NewReader(tt.body))
			if tt.authenticated {
				req = req.WithContext(authentication.WithPrincipal(req.Context(), &types.Principal{Subject: "alice"}))
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}

			if rr.Code == http.StatusCreated && tt.service.lastReservation.ReservedBy != "alice" {
				t.Errorf("expected the reservation to carry the caller's subject, got %q", tt.service.lastReservation.ReservedBy)
			}
		})
	}
}
