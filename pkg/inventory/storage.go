// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

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
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const (
	itemColumns        = "id, sku, name, quantity, location, qr_path, created_at"
	reservationColumns = "id, item_id, reserved_by, quantity, starts_at, ends_at, status, created_at"

	ReservationActive    = "ACTIVE"
	ReservationCancelled = "CANCELLED"
)

// Storage persists items and reservations in the tenant's own database.
// Every method resolves the handle from the request context, so data never
// crosses tenant boundaries.
type Storage struct {
	datasources DataSourceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewStorage(datasources DataSourceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.datasources = datasources

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

func (s *Storage) statement(ctx context.Context) (sq.StatementBuilderType, error) {
	client, err := s.datasources.Resolve(ctx)
	if err != nil {
		return sq.StatementBuilderType{}, err
	}
	return client.Statement(ctx), nil
}

func (s *Storage) CreateItem(ctx context.Context, item *types.Item) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.CreateItem")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate item ID: %w", err)
	}

	var created types.Item
	err = stmt.
		Insert("items").
		Columns("id", "sku", "name", "quantity", "location", "qr_path").
		Values(id.String(), item.SKU, item.Name, item.Quantity, item.Location, item.QRPath).
		Suffix("RETURNING " + itemColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.SKU, &created.Name, &created.Quantity, &created.Location, &created.QRPath, &created.CreatedAt)

	if err != nil {
		return nil, storage.WrapDuplicateKeyError(fmt.Errorf("failed to insert item: %w", err), "item SKU already exists")
	}

	return &created, nil
}

func (s *Storage) GetItemByID(ctx context.Context, id string) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.GetItemByID")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	var item types.Item
	err = stmt.
		Select("id", "sku", "name", "quantity", "location", "qr_path", "created_at").
		From("items").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&item.ID, &item.SKU, &item.Name, &item.Quantity, &item.Location, &item.QRPath, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

func (s *Storage) ListItems(ctx context.Context, page, size int64) ([]*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.ListItems")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := db.PageSize(size)
	rows, err := stmt.
		Select("id", "sku", "name", "quantity", "location", "qr_path", "created_at").
		From("items").
		OrderBy("created_at DESC").
		Offset(db.Offset(page, pageSize)).
		Limit(pageSize).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*types.Item
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.Quantity, &item.Location, &item.QRPath, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// UpdateItemQuantity applies a signed delta. The check constraint on the
// quantity column rejects drops below zero, which surfaces here as an error.
func (s *Storage) UpdateItemQuantity(ctx context.Context, id string, delta int) (*types.Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.UpdateItemQuantity")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	var item types.Item
	err = stmt.
		Update("items").
		Set("quantity", sq.Expr("quantity + ?", delta)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + itemColumns).
		QueryRowContext(ctx).
		Scan(&item.ID, &item.SKU, &item.Name, &item.Quantity, &item.Location, &item.QRPath, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update item quantity: %w", err)
	}

	return &item, nil
}

func (s *Storage) DeleteItem(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.DeleteItem")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return err
	}

	result, err := stmt.
		Delete("items").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) CreateReservation(ctx context.Context, r *types.Reservation) (*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.CreateReservation")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reservation ID: %w", err)
	}

	var created types.Reservation
	err = stmt.
		Insert("reservations").
		Columns("id", "item_id", "reserved_by", "quantity", "starts_at", "ends_at", "status").
		Values(id.String(), r.ItemID, r.ReservedBy, r.Quantity, r.StartsAt, r.EndsAt, ReservationActive).
		Suffix("RETURNING " + reservationColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.ItemID, &created.ReservedBy, &created.Quantity, &created.StartsAt, &created.EndsAt, &created.Status, &created.CreatedAt)

	if err != nil {
		return nil, storage.WrapForeignKeyError(fmt.Errorf("failed to insert reservation: %w", err), "item does not exist")
	}

	return &created, nil
}

func (s *Storage) GetReservationByID(ctx context.Context, id string) (*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.GetReservationByID")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	var r types.Reservation
	err = stmt.
		Select("id", "item_id", "reserved_by", "quantity", "starts_at", "ends_at", "status", "created_at").
		From("reservations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&r.ID, &r.ItemID, &r.ReservedBy, &r.Quantity, &r.StartsAt, &r.EndsAt, &r.Status, &r.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return &r, nil
}

func (s *Storage) ListReservations(ctx context.Context, itemID string) ([]*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.ListReservations")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	query := stmt.
		Select("id", "item_id", "reserved_by", "quantity", "starts_at", "ends_at", "status", "created_at").
		From("reservations").
		OrderBy("starts_at")
	if itemID != "" {
		query = query.Where(sq.Eq{"item_id": itemID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*types.Reservation
	for rows.Next() {
		var r types.Reservation
		if err := rows.Scan(&r.ID, &r.ItemID, &r.ReservedBy, &r.Quantity, &r.StartsAt, &r.EndsAt, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}

	return reservations, nil
}

func (s *Storage) CancelReservation(ctx context.Context, id string) (*types.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.CancelReservation")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return nil, err
	}

	var r types.Reservation
	err = stmt.
		Update("reservations").
		Set("status", ReservationCancelled).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + reservationColumns).
		QueryRowContext(ctx).
		Scan(&r.ID, &r.ItemID, &r.ReservedBy, &r.Quantity, &r.StartsAt, &r.EndsAt, &r.Status, &r.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	return &r, nil
}

// ReservedQuantity sums the quantities of active reservations overlapping the
// given window.
func (s *Storage) ReservedQuantity(ctx context.Context, itemID string, from, to time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Storage.ReservedQuantity")
	defer span.End()

	stmt, err := s.statement(ctx)
	if err != nil {
		return 0, err
	}

	var reserved int
	err = stmt.
		Select("COALESCE(SUM(quantity), 0)").
		From("reservations").
		Where(sq.Eq{"item_id": itemID, "status": ReservationActive}).
		Where(sq.Lt{"starts_at": to}).
		Where(sq.Gt{"ends_at": from}).
		QueryRowContext(ctx).
		Scan(&reserved)

	if err != nil {
		return 0, fmt.Errorf("failed to sum reserved quantity: %w", err)
	}

	return reserved, nil
}
