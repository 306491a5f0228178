// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Principal is the caller identity reconstructed per request from a
// validated access token. It is never persisted.
type Principal struct {
	Subject  string
	TenantID string
	Role     string
}

// TokenPair is issued at login and at every silent refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Tenant is the billing record for an isolated customer organization.
// Mutated only by billing events (webhook, manual activation); the gating
// pipeline reads it on every request.
type Tenant struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	TrialEnd           time.Time `db:"trial_end"`
	SubscriptionActive bool      `db:"subscription_active"`
	CurrentPeriodEnd   time.Time `db:"current_period_end"`
	CreatedAt          time.Time `db:"created_at"`
}

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	TenantID     string    `db:"tenant_id"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// SubscriptionStatus is the tri-state access decision, derived and never
// stored.
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "TRIAL"
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

type SubscriptionState struct {
	Status   SubscriptionStatus
	DaysLeft int
	Allowed  bool
}

type Item struct {
	ID        string    `db:"id"`
	SKU       string    `db:"sku"`
	Name      string    `db:"name"`
	Quantity  int       `db:"quantity"`
	Location  string    `db:"location"`
	QRPath    string    `db:"qr_path"`
	CreatedAt time.Time `db:"created_at"`
}

type Reservation struct {
	ID         string    `db:"id"`
	ItemID     string    `db:"item_id"`
	ReservedBy string    `db:"reserved_by"`
	Quantity   int       `db:"quantity"`
	StartsAt   time.Time `db:"starts_at"`
	EndsAt     time.Time `db:"ends_at"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}
