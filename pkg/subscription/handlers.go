// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/billing/status", a.status)
	mux.Post("/api/v0/billing/webhook", a.webhook)
	mux.Post("/api/v0/billing/checkout", a.checkout)
	mux.Get("/api/v0/billing/portal", a.portal)
}

type statusResponse struct {
	TenantID string `json:"tenant_id"`
	Status   string `json:"status"`
	DaysLeft int    `json:"days_left"`
	Allowed  bool   `json:"allowed"`
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "subscription.API.status")
	defer span.End()

	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	tenant, state, err := a.service.StatusForSubject(ctx, principal.Subject)
	if err != nil {
		if errors.Is(err, ErrNoTenant) {
			http.Error(w, "no tenant associated with subject", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to resolve billing status: %v", err)
		http.Error(w, "failed to resolve billing status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(statusResponse{
		TenantID: tenant.ID,
		Status:   string(state.Status),
		DaysLeft: state.DaysLeft,
		Allowed:  state.Allowed,
	}); err != nil {
		a.logger.Errorf("failed to encode billing status: %v", err)
	}
}

// webhookEvent is the payment-provider confirmation payload. Two event
// shapes are understood: a checkout completion extending a tenant's period,
// and an external (app store) purchase activating a subject's tenant until a
// verified expiry.
type webhookEvent struct {
	Type string `json:"type"`

	TenantID       string `json:"tenant_id,omitempty"`
	AdditionalDays int    `json:"additional_days,omitempty"`

	Subject   string    `json:"subject,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	Expiry    time.Time `json:"expiry,omitempty"`
}

func (a *API) webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "subscription.API.webhook")
	defer span.End()

	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var err error
	switch event.Type {
	case "checkout.completed":
		if event.TenantID == "" || event.AdditionalDays <= 0 {
			http.Error(w, "tenant_id and additional_days are required", http.StatusBadRequest)
			return
		}
		_, err = a.service.ExtendSubscription(ctx, event.TenantID, event.AdditionalDays)
	case "purchase.verified":
		if event.Subject == "" || event.Expiry.IsZero() {
			http.Error(w, "subject and expiry are required", http.StatusBadRequest)
			return
		}
		_, err = a.service.ActivateFromExternalPurchase(ctx, event.Subject, event.ProductID, event.Expiry)
	default:
		// Unknown event types are acknowledged so the provider does not
		// retry them forever.
		a.logger.Debugf("ignoring billing event of type %q", event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, ErrNoTenant) {
			http.Error(w, "unknown tenant or subject", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to apply billing event: %v", err)
		http.Error(w, "failed to apply billing event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// checkout and portal only surface the effect of the provider integration;
// the checkout protocol itself lives with the payment provider.
func (a *API) checkout(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "subscription.API.checkout")
	defer span.End()

	a.notConfiguredResponse(w)
}

func (a *API) portal(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "subscription.API.portal")
	defer span.End()

	a.notConfiguredResponse(w)
}

func (a *API) notConfiguredResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotImplemented)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "provider_not_configured",
		"message": "payment provider integration is not configured",
	})
}
