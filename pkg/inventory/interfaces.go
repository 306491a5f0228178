// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"context"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// DataSourceInterface narrows the registry to what this package needs:
// resolving the per-tenant database handle for the current request.
type DataSourceInterface interface {
	Resolve(ctx context.Context) (db.DBClientInterface, error)
}

type StorageInterface interface {
	CreateItem(ctx context.Context, item *types.Item) (*types.Item, error)
	GetItemByID(ctx context.Context, id string) (*types.Item, error)
	ListItems(ctx context.Context, page, size int64) ([]*types.Item, error)
	UpdateItemQuantity(ctx context.Context, id string, delta int) (*types.Item, error)
	DeleteItem(ctx context.Context, id string) error

	CreateReservation(ctx context.Context, r *types.Reservation) (*types.Reservation, error)
	GetReservationByID(ctx context.Context, id string) (*types.Reservation, error)
	ListReservations(ctx context.Context, itemID string) ([]*types.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*types.Reservation, error)
	ReservedQuantity(ctx context.Context, itemID string, from, to time.Time) (int, error)
}

// QRRendererInterface produces a label reference for an item so warehouse
// staff can scan it back to the record.
type QRRendererInterface interface {
	Render(ctx context.Context, content string) (string, error)
}

// MailerInterface delivers reservation confirmations. Delivery failures are
// reported but must not fail the reservation itself.
type MailerInterface interface {
	SendReservationConfirmation(ctx context.Context, recipient string, item *types.Item, reservation *types.Reservation) error
}

type ServiceInterface interface {
	CreateItem(ctx context.Context, item *types.Item) (*types.Item, error)
	GetItem(ctx context.Context, id string) (*types.Item, error)
	ListItems(ctx context.Context, page, size int64) ([]*types.Item, error)
	AdjustQuantity(ctx context.Context, id string, delta int) (*types.Item, error)
	DeleteItem(ctx context.Context, id string) error

	CreateReservation(ctx context.Context, r *types.Reservation) (*types.Reservation, error)
	ListReservations(ctx context.Context, itemID string) ([]*types.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*types.Reservation, error)
}
