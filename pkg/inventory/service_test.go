// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

type fakeStorage struct {
	items        map[string]*types.Item
	reserved     map[string]int
	reservations map[string]*types.Reservation
	created      []*types.Reservation
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		items:        make(map[string]*types.Item),
		reserved:     make(map[string]int),
		reservations: make(map[string]*types.Reservation),
	}
}

func (f *fakeStorage) CreateItem(_ context.Context, item *types.Item) (*types.Item, error) {
	clone := *item
	clone.ID = "item-" + item.SKU
	f.items[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeStorage) GetItemByID(_ context.Context, id string) (*types.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return item, nil
}

func (f *fakeStorage) ListItems(_ context.Context, _, _ int64) ([]*types.Item, error) {
	var items []*types.Item
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeStorage) UpdateItemQuantity(_ context.Context, id string, delta int) (*types.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	item.Quantity += delta
	return item, nil
}

func (f *fakeStorage) DeleteItem(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStorage) CreateReservation(_ context.Context, r *types.Reservation) (*types.Reservation, error) {
	clone := *r
	clone.ID = "res-1"
	clone.Status = ReservationActive
	f.reservations[clone.ID] = &clone
	f.created = append(f.created, &clone)
	return &clone, nil
}

func (f *fakeStorage) GetReservationByID(_ context.Context, id string) (*types.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r, nil
}

func (f *fakeStorage) ListReservations(_ context.Context, _ string) ([]*types.Reservation, error) {
	var reservations []*types.Reservation
	for _, r := range f.reservations {
		reservations = append(reservations, r)
	}
	return reservations, nil
}

func (f *fakeStorage) CancelReservation(_ context.Context, id string) (*types.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	r.Status = ReservationCancelled
	return r, nil
}

func (f *fakeStorage) ReservedQuantity(_ context.Context, itemID string, _, _ time.Time) (int, error) {
	return f.reserved[itemID], nil
}

type recordingMailer struct {
	sent int
	err  error
}

func (m *recordingMailer) SendReservationConfirmation(context.Context, string, *types.Item, *types.Reservation) error {
	m.sent++
	return m.err
}

func newTestService(store *fakeStorage, mailer MailerInterface) *Service {
	return NewService(
		store,
		NewLinkQRRenderer("https://qr.example.com"),
		mailer,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)
}

func TestService_CreateItem(t *testing.T) {
	store := newFakeStorage()
	s := newTestService(store, &recordingMailer{})

	item, err := s.CreateItem(context.Background(), &types.Item{SKU: "WIDGET-1", Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.QRPath != "https://qr.example.com/labels/WIDGET-1.png" {
		t.Errorf("expected a rendered label path, got %q", item.QRPath)
	}
	if _, ok := store.items[item.ID]; !ok {
		t.Error("expected the item to be persisted")
	}
}

func TestService_CreateReservation(t *testing.T) {
	now := time.Now().UTC()
	window := func() (time.Time, time.Time) { return now, now.Add(24 * time.Hour) }

	tests := []struct {
		name            string
		itemQuantity    int
		alreadyReserved int
		requested       int
		expectedErr     error
	}{
		{
			name:         "fits free stock",
			itemQuantity: 10,
			requested:    4,
		},
		{
			name:            "fits after accounting for overlapping holds",
			itemQuantity:    10,
			alreadyReserved: 6,
			requested:       4,
		},
		{
			name:            "exceeds free stock",
			itemQuantity:    10,
			alreadyReserved: 7,
			requested:       4,
			expectedErr:     ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			store.items["item-1"] = &types.Item{ID: "item-1", SKU: "WIDGET-1", Name: "Widget", Quantity: tt.itemQuantity}
			store.reserved["item-1"] = tt.alreadyReserved

			mailer := &recordingMailer{}
			s := newTestService(store, mailer)

			from, to := window()
			reservation, err := s.CreateReservation(context.Background(), &types.Reservation{
				ItemID:     "item-1",
				ReservedBy: "alice",
				Quantity:   tt.requested,
				StartsAt:   from,
				EndsAt:     to,
			})

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				if len(store.created) != 0 {
					t.Error("a rejected reservation must not be persisted")
				}
				if mailer.sent != 0 {
					t.Error("a rejected reservation must not send a confirmation")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reservation.Status != ReservationActive {
				t.Errorf("expected an active reservation, got %q", reservation.Status)
			}
			if mailer.sent != 1 {
				t.Errorf("expected one confirmation, got %d", mailer.sent)
			}
		})
	}
}

func TestService_CreateReservation_MailFailureDoesNotFail(t *testing.T) {
	store := newFakeStorage()
	store.items["item-1"] = &types.Item{ID: "item-1", Quantity: 10}

	s := newTestService(store, &recordingMailer{err: errors.New("smtp down")})

	now := time.Now().UTC()
	_, err := s.CreateReservation(context.Background(), &types.Reservation{
		ItemID:   "item-1",
		Quantity: 1,
		StartsAt: now,
		EndsAt:   now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("mail failure must not fail the reservation: %v", err)
	}
}

func TestService_CreateReservation_InvalidWindow(t *testing.T) {
	store := newFakeStorage()
	store.items["item-1"] = &types.Item{ID: "item-1", Quantity: 10}
	s := newTestService(store, &recordingMailer{})

	now := time.Now().UTC()
	_, err := s.CreateReservation(context.Background(), &types.Reservation{
		ItemID:   "item-1",
		Quantity: 1,
		StartsAt: now,
		EndsAt:   now,
	})
	if err == nil {
		t.Error("expected an error for an empty window")
	}
}

func TestService_CancelReservation(t *testing.T) {
	store := newFakeStorage()
	store.reservations["res-1"] = &types.Reservation{ID: "res-1", Status: ReservationActive}
	s := newTestService(store, &recordingMailer{})

	reservation, err := s.CancelReservation(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != ReservationCancelled {
		t.Errorf("expected cancelled status, got %q", reservation.Status)
	}

	if _, err := s.CancelReservation(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
