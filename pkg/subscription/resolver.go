// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"time"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// Resolve computes the tri-state subscription status of a tenant billing
// record at the given instant. It is a pure function, called on every gated
// request; the result is never cached since billing state changes
// asynchronously (webhook, manual activation).
//
// Access is allowed while the trial is running or while a paid period is
// active. DaysLeft counts whole days until the later of trial end and
// current period end and is never negative.
func Resolve(t *types.Tenant, now time.Time) types.SubscriptionState {
	state := types.SubscriptionState{
		Status:   types.SubscriptionExpired,
		DaysLeft: daysLeft(t, now),
	}

	switch {
	case now.Before(t.TrialEnd):
		state.Status = types.SubscriptionTrial
		state.Allowed = true
	case t.SubscriptionActive && now.Before(t.CurrentPeriodEnd):
		state.Status = types.SubscriptionActive
		state.Allowed = true
	}

	return state
}

func daysLeft(t *types.Tenant, now time.Time) int {
	deadline := t.TrialEnd
	if t.CurrentPeriodEnd.After(deadline) {
		deadline = t.CurrentPeriodEnd
	}

	if !deadline.After(now) {
		return 0
	}

	return int(deadline.Sub(now).Hours() / 24)
}
