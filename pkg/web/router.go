// Copyright 2026 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/inventory"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/metrics"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/status"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/subscription"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/tenant"
)

// NewRouter assembles the request pipeline. Order matters: identity is
// established first, silently refreshed next, and only then does the
// subscription guard decide whether the tenant may proceed. Everything
// mounted after the guard runs with the tenant routing key in context.
func NewRouter(
	authMiddleware *authentication.Middleware,
	authAPI *authentication.API,
	guard *subscription.Guard,
	billingAPI *subscription.API,
	inventoryAPI *inventory.API,
	tenantAPI *tenant.API,
	controlDB db.DBClientInterface,
	corsAllowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(corsAllowedOrigins),
		authMiddleware.Authenticate(),
		authMiddleware.Refresh(),
		guard.Middleware(),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	authAPI.RegisterEndpoints(router)
	inventoryAPI.RegisterEndpoints(router)

	// Control-plane writes (billing events, tenant provisioning) run inside
	// a transaction on the control database.
	router.Group(func(r chi.Router) {
		r.Use(db.TransactionMiddleware(controlDB, logger))
		billingAPI.RegisterEndpoints(r)
		tenantAPI.RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
