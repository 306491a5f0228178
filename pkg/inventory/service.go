// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// ErrInsufficientStock is returned when a reservation asks for more units
// than the item has free in the requested window.
var ErrInsufficientStock = errors.New("insufficient stock for reservation")

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	qr      QRRendererInterface
	mailer  MailerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	qr QRRendererInterface,
	mailer MailerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		qr:      qr,
		mailer:  mailer,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) CreateItem(ctx context.Context, item *types.Item) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.CreateItem")
	defer span.End()

	qrPath, err := s.qr.Render(ctx, item.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to render item label: %w", err)
	}
	item.QRPath = qrPath

	created, err := s.storage.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.GetItem")
	defer span.End()

	return s.storage.GetItemByID(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, page, size int64) ([]*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.ListItems")
	defer span.End()

	return s.storage.ListItems(ctx, page, size)
}

func (s *Service) AdjustQuantity(ctx context.Context, id string, delta int) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.AdjustQuantity")
	defer span.End()

	item, err := s.storage.UpdateItemQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	if item.Quantity < 0 {
		return nil, fmt.Errorf("quantity adjustment would leave %s below zero", id)
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.DeleteItem")
	defer span.End()

	return s.storage.DeleteItem(ctx, id)
}

// CreateReservation places a hold on an item for a time window. The requested
// quantity must fit into the item's stock net of active reservations
// overlapping the same window.
func (s *Service) CreateReservation(ctx context.Context, r *types.Reservation) (*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.CreateReservation")
	defer span.End()

	if r.Quantity <= 0 {
		return nil, fmt.Errorf("reservation quantity must be positive, got %d", r.Quantity)
	}
	if !r.EndsAt.After(r.StartsAt) {
		return nil, fmt.Errorf("reservation window must end after it starts")
	}

	item, err := s.storage.GetItemByID(ctx, r.ItemID)
	if err != nil {
		return nil, err
	}

	reserved, err := s.storage.ReservedQuantity(ctx, r.ItemID, r.StartsAt, r.EndsAt)
	if err != nil {
		return nil, err
	}

	if reserved+r.Quantity > item.Quantity {
		return nil, fmt.Errorf("%w: %d requested, %d available", ErrInsufficientStock, r.Quantity, item.Quantity-reserved)
	}

	created, err := s.storage.CreateReservation(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendReservationConfirmation(ctx, created.ReservedBy, item, created); err != nil {
		s.logger.Warnf("failed to send reservation confirmation for %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *Service) ListReservations(ctx context.Context, itemID string) ([]*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.ListReservations")
	defer span.End()

	return s.storage.ListReservations(ctx, itemID)
}

func (s *Service) CancelReservation(ctx context.Context, id string) (*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Service.CancelReservation")
	defer span.End()

	return s.storage.CancelReservation(ctx, id)
}
