// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
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
	mux.Post("/api/v0/tenants", a.createTenant)
	mux.Get("/api/v0/tenants", a.listTenants)
	mux.Post("/api/v0/tenants/{id}/users", a.createUser)
	mux.Post("/api/v0/tenants/{id}/store", a.registerStore)
}

type tenantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TrialEnd           time.Time `json:"trial_end"`
	SubscriptionActive bool      `json:"subscription_active"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
}

func toTenantResponse(t *types.Tenant) tenantResponse {
	return tenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		TrialEnd:           t.TrialEnd,
		SubscriptionActive: t.SubscriptionActive,
		CurrentPeriodEnd:   t.CurrentPeriodEnd,
		CreatedAt:          t.CreatedAt,
	}
}

type createTenantRequest struct {
	Name      string `json:"name" validate:"required,max=256"`
	TrialDays int    `json:"trial_days" validate:"gte=0,lte=365"`
}

func (a *API) createTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.createTenant")
	defer span.End()

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenant, err := a.service.CreateTenant(ctx, req.Name, req.TrialDays)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			http.Error(w, "tenant already exists", http.StatusConflict)
			return
		}
		a.logger.Errorf("failed to create tenant: %v", err)
		http.Error(w, "failed to create tenant", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusCreated, toTenantResponse(tenant))
}

func (a *API) listTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTenants")
	defer span.End()

	tenants, err := a.service.ListTenants(ctx)
	if err != nil {
		a.logger.Errorf("failed to list tenants: %v", err)
		http.Error(w, "failed to list tenants", http.StatusInternalServerError)
		return
	}

	resp := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		resp = append(resp, toTenantResponse(t))
	}

	a.writeJSON(w, http.StatusOK, resp)
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin member"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.createUser")
	defer span.End()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := a.service.CreateUser(ctx, chi.URLParam(r, "id"), req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "tenant not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrDuplicateKey):
			http.Error(w, "username already taken", http.StatusConflict)
		default:
			a.logger.Errorf("failed to create user: %v", err)
			http.Error(w, "failed to create user", http.StatusInternalServerError)
		}
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]string{
		"id":        user.ID,
		"username":  user.Username,
		"tenant_id": user.TenantID,
		"role":      user.Role,
	})
}

type registerStoreRequest struct {
	DSN string `json:"dsn" validate:"required"`
}

func (a *API) registerStore(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.registerStore")
	defer span.End()

	var req registerStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.service.RegisterStore(ctx, chi.URLParam(r, "id"), req.DSN); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "tenant not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to register tenant store: %v", err)
		http.Error(w, "failed to register tenant store", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"status": "registered"})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
