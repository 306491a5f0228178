// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
)

type API struct {
	users    UserStorageInterface
	provider TokenProviderInterface
	cookies  *CookieManager

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(users UserStorageInterface, provider TokenProviderInterface, cookies *CookieManager, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		users:    users,
		provider: provider,
		cookies:  cookies,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/login", a.login)
	mux.Post("/api/v0/auth/logout", a.logout)
	mux.Get("/api/v0/auth/me", a.me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := a.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.logger.Errorf("failed to look up user: %v", err)
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		// Unknown user and bad password are indistinguishable to the caller.
		a.logger.Security().AuthnFailure("unknown username")
		a.invalidCredentialsResponse(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		a.logger.Security().AuthnFailure("password mismatch")
		a.invalidCredentialsResponse(w)
		return
	}

	pair, err := a.provider.Issue(ctx, user.Username)
	if err != nil {
		a.logger.Errorf("failed to issue token pair: %v", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	a.cookies.SetSession(w, pair)
	a.logger.Security().AuthnSuccess(user.Username)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{
		Username: user.Username,
		TenantID: user.TenantID,
		Role:     user.Role,
	}); err != nil {
		a.logger.Errorf("failed to encode login response: %v", err)
	}
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "authentication.API.logout")
	defer span.End()

	a.cookies.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.me")
	defer span.End()

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": "unauthenticated",
		})
		return
	}

	user, err := a.users.GetUserByUsername(ctx, principal.Subject)
	if err != nil {
		a.logger.Errorf("failed to look up authenticated user: %v", err)
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{
		Username: user.Username,
		TenantID: user.TenantID,
		Role:     user.Role,
	}); err != nil {
		a.logger.Errorf("failed to encode profile response: %v", err)
	}
}

func (a *API) invalidCredentialsResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "invalid credentials",
	})
}
