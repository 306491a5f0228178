// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package migrations holds the goose migrations for the control-plane
// database: tenant billing records and user credentials.
package migrations

import "embed"

//go:embed *.sql
var EmbedMigrations embed.FS
