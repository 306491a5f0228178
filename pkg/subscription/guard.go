// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tenantctx"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
)

// DefaultAllowlist is the path set exempt from subscription gating: the
// authentication endpoints (a locked-out user must still be able to log in
// and out) and the billing surface (an expired tenant must still be able to
// pay). Status, metrics and version are operational endpoints.
var DefaultAllowlist = []string{
	"/api/v0/auth/",
	"/api/v0/billing/",
	"/api/v0/status",
	"/api/v0/metrics",
	"/api/v0/version",
}

// Guard enforces billing-based access control. It must run strictly after
// the authentication filters (it needs identity) and strictly before any
// persistence access (it populates the tenant routing context).
type Guard struct {
	tenants   TenantStorageInterface
	users     UserStorageInterface
	allowlist []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGuard(tenants TenantStorageInterface, users UserStorageInterface, allowlist []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Guard {
	return &Guard{
		tenants:   tenants,
		users:     users,
		allowlist: allowlist,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (g *Guard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := g.tracer.Start(r.Context(), "subscription.Guard.Middleware")
			defer span.End()

			if g.allowlisted(r.URL.Path) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			principal, ok := authentication.PrincipalFromContext(ctx)
			if !ok {
				// No identity: downstream authorization rejects with 401,
				// billing has nothing to say about it.
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user, err := g.users.GetUserByUsername(ctx, principal.Subject)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Identity without a user record is a configuration
					// edge, not a billing failure.
					g.logger.Warnf("authenticated subject %q has no user record, bypassing guard", principal.Subject)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				g.unavailableResponse(w, err)
				return
			}

			if user.TenantID == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			tenant, err := g.tenants.GetTenantByID(ctx, user.TenantID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					g.logger.Warnf("user %q references missing tenant %q, bypassing guard", user.Username, user.TenantID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				// Resolution failures fail closed, never open.
				g.unavailableResponse(w, err)
				return
			}

			state := Resolve(tenant, time.Now().UTC())
			if !state.Allowed {
				g.logger.Security().SubscriptionDenied(principal.Subject, tenant.ID)
				g.paymentRequiredResponse(w)
				return
			}

			// The routing key is set exactly once per request, here, before
			// any handler or persistence code runs.
			ctx = tenantctx.WithTenant(ctx, tenant.ID)
			ctx = authentication.WithPrincipal(ctx, &types.Principal{
				Subject:  user.Username,
				TenantID: user.TenantID,
				Role:     user.Role,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (g *Guard) allowlisted(path string) bool {
	for _, prefix := range g.allowlist {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Guard) paymentRequiredResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusPaymentRequired)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "payment_required",
		"message": "subscription_expired",
	}); err != nil {
		g.logger.Errorf("failed to encode payment required response: %v", err)
	}
}

func (g *Guard) unavailableResponse(w http.ResponseWriter, err error) {
	g.logger.Errorf("subscription resolution failed, denying access: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "subscription_check_unavailable",
		"message": "try_later",
	}); err != nil {
		g.logger.Errorf("failed to encode unavailable response: %v", err)
	}
}
