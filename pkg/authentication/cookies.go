// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

const (
	// AccessCookieName carries the short-lived access token.
	AccessCookieName = "warehouseqr_access"
	// RefreshCookieName carries the long-lived refresh token.
	RefreshCookieName = "warehouseqr_refresh"
)

type CookieConfig struct {
	Domain   string
	Secure   bool
	SameSite string
}

// CookieManager writes and clears the HTTP-only session cookies. Both
// cookies are scoped to / so every API path sees them.
type CookieManager struct {
	domain     string
	secure     bool
	sameSite   http.SameSite
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieManager(cfg CookieConfig, accessTTL, refreshTTL time.Duration) *CookieManager {
	sameSite := http.SameSiteLaxMode
	switch cfg.SameSite {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "none":
		// Cross-origin SPA deployments; requires Secure.
		sameSite = http.SameSiteNoneMode
	}

	return &CookieManager{
		domain:     cfg.Domain,
		secure:     cfg.Secure,
		sameSite:   sameSite,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SetSession writes both token cookies with max ages matching the token TTLs.
func (c *CookieManager) SetSession(w http.ResponseWriter, pair *types.TokenPair) {
	http.SetCookie(w, c.cookie(AccessCookieName, pair.AccessToken, c.accessTTL))
	http.SetCookie(w, c.cookie(RefreshCookieName, pair.RefreshToken, c.refreshTTL))
}

// ClearSession expires both token cookies.
func (c *CookieManager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(AccessCookieName, "", -time.Second))
	http.SetCookie(w, c.cookie(RefreshCookieName, "", -time.Second))
}

func (c *CookieManager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	}
}
