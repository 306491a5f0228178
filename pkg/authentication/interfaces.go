// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/tokens"
)

// TokenProviderInterface is the slice of the token service the filters and
// the login API depend on.
type TokenProviderInterface = tokens.ServiceInterface

// UserStorageInterface is the subset of the control-plane storage needed to
// authenticate credentials. It is a subset of the internal/storage interface.
type UserStorageInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
}
