// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/items", a.createItem)
	mux.Get("/api/v0/items", a.listItems)
	mux.Get("/api/v0/items/{id}", a.getItem)
	mux.Patch("/api/v0/items/{id}/quantity", a.adjustQuantity)
	mux.Delete("/api/v0/items/{id}", a.deleteItem)

	mux.Post("/api/v0/reservations", a.createReservation)
	mux.Get("/api/v0/reservations", a.listReservations)
	mux.Delete("/api/v0/reservations/{id}", a.cancelReservation)
}

type itemResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Location  string    `json:"location,omitempty"`
	QRPath    string    `json:"qr_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemResponse(item *types.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		SKU:       item.SKU,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Location:  item.Location,
		QRPath:    item.QRPath,
		CreatedAt: item.CreatedAt,
	}
}

type reservationResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	ReservedBy string    `json:"reserved_by"`
	Quantity   int       `json:"quantity"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReservationResponse(r *types.Reservation) reservationResponse {
	return reservationResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		ReservedBy: r.ReservedBy,
		Quantity:   r.Quantity,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

type createItemRequest struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=256"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location" validate:"max=128"`
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.createItem")
	defer span.End()

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := a.service.CreateItem(ctx, &types.Item{
		SKU:      req.SKU,
		Name:     req.Name,
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			http.Error(w, "item SKU already exists", http.StatusConflict)
			return
		}
		a.logger.Errorf("failed to create item: %v", err)
		http.Error(w, "failed to create item", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.listItems")
	defer span.End()

	page := queryInt(r, "page")
	size := queryInt(r, "size")

	items, err := a.service.ListItems(ctx, page, size)
	if err != nil {
		a.logger.Errorf("failed to list items: %v", err)
		http.Error(w, "failed to list items", http.StatusInternalServerError)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}

	a.writeJSON(w, http.StatusOK, resp)
}

func (a *API) getItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.getItem")
	defer span.End()

	item, err := a.service.GetItem(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to get item: %v", err)
		http.Error(w, "failed to get item", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, toItemResponse(item))
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (a *API) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.adjustQuantity")
	defer span.End()

	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := a.service.AdjustQuantity(ctx, chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to adjust quantity: %v", err)
		http.Error(w, "failed to adjust quantity", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (a *API) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.deleteItem")
	defer span.End()

	if err := a.service.DeleteItem(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to delete item: %v", err)
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createReservationRequest struct {
	ItemID   string    `json:"item_id" validate:"required,uuid"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

func (a *API) createReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.createReservation")
	defer span.End()

	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reservation, err := a.service.CreateReservation(ctx, &types.Reservation{
		ItemID:     req.ItemID,
		ReservedBy: principal.Subject,
		Quantity:   req.Quantity,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrForeignKeyViolation):
			http.Error(w, "item not found", http.StatusNotFound)
		case errors.Is(err, ErrInsufficientStock):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			a.logger.Errorf("failed to create reservation: %v", err)
			http.Error(w, "failed to create reservation", http.StatusInternalServerError)
		}
		return
	}

	a.writeJSON(w, http.StatusCreated, toReservationResponse(reservation))
}

func (a *API) listReservations(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.listReservations")
	defer span.End()

	reservations, err := a.service.ListReservations(ctx, r.URL.Query().Get("item_id"))
	if err != nil {
		a.logger.Errorf("failed to list reservations: %v", err)
		http.Error(w, "failed to list reservations", http.StatusInternalServerError)
		return
	}

	resp := make([]reservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		resp = append(resp, toReservationResponse(reservation))
	}

	a.writeJSON(w, http.StatusOK, resp)
}

func (a *API) cancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "inventory.API.cancelReservation")
	defer span.End()

	reservation, err := a.service.CancelReservation(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to cancel reservation: %v", err)
		http.Error(w, "failed to cancel reservation", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, toReservationResponse(reservation))
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func queryInt(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
