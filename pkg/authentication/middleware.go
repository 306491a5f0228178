// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/tokens"
)

type Middleware struct {
	provider TokenProviderInterface
	cookies  *CookieManager

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(provider TokenProviderInterface, cookies *CookieManager, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		provider: provider,
		cookies:  cookies,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// Authenticate reads the access token cookie and, when it validates,
// establishes the caller identity for the rest of the request. A missing or
// invalid token does not reject the request here: identity is cleared and
// the chain continues, so public routes work and the reject decision stays
// with downstream authorization. A panic out of the validator fails closed
// with a 401 instead of continuing in an unknown state.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			raw, found := readCookie(r, AccessCookieName)
			if !found {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			subject, ok, failed := m.validateAccess(ctx, raw)
			if failed {
				m.unauthorizedResponse(w)
				return
			}
			if !ok {
				m.logger.Debugf("access token rejected, continuing unauthenticated")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = WithPrincipal(ctx, &types.Principal{Subject: subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateAccess shields the pipeline from validator panics: a request must
// never continue past this stage in an unknown authentication state.
func (m *Middleware) validateAccess(ctx context.Context, raw string) (subject string, ok bool, failed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Errorf("token validation panicked: %v", rec)
			subject, ok, failed = "", false, true
		}
	}()

	subject, ok = m.provider.Validate(ctx, raw, tokens.KindAccess)
	return subject, ok, false
}

// Refresh runs after Authenticate and only acts when no identity was
// established. A valid refresh token cookie mints exactly one new token pair,
// writes both cookies back and authenticates the current request, so the
// client never observes the expired access token. The old refresh token is
// not revoked server side; it simply ages out (no token state is kept).
func (m *Middleware) Refresh() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Refresh")
			defer span.End()

			if _, ok := PrincipalFromContext(ctx); ok {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			outcome := m.tryRefresh(r.WithContext(ctx))
			if !outcome.authenticated {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			m.cookies.SetSession(w, outcome.rotated)
			m.logger.Security().TokenRefresh(outcome.principal.Subject)

			ctx = WithPrincipal(ctx, outcome.principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// refreshOutcome is the explicit two-state result of a silent refresh
// attempt: either Authenticated with a rotated pair, or Unauthenticated.
type refreshOutcome struct {
	authenticated bool
	principal     *types.Principal
	rotated       *types.TokenPair
}

func (m *Middleware) tryRefresh(r *http.Request) refreshOutcome {
	ctx := r.Context()

	raw, found := readCookie(r, RefreshCookieName)
	if !found {
		return refreshOutcome{}
	}

	subject, ok := m.provider.Validate(ctx, raw, tokens.KindRefresh)
	if !ok {
		m.logger.Debugf("refresh token rejected, leaving request unauthenticated")
		return refreshOutcome{}
	}

	pair, err := m.provider.Issue(ctx, subject)
	if err != nil {
		m.logger.Errorf("failed to rotate token pair: %v", err)
		return refreshOutcome{}
	}

	return refreshOutcome{
		authenticated: true,
		principal:     &types.Principal{Subject: subject},
		rotated:       pair,
	}
}

func (m *Middleware) unauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "unauthorized",
	}); err != nil {
		m.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}

func readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
