// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package tenantstore holds the goose migrations applied to every
// per-tenant database: the inventory items and their reservations.
package tenantstore

import "embed"

//go:embed *.sql
var EmbedMigrations embed.FS
