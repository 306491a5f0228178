// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inventory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/types"
)

// LinkQRRenderer encodes the item reference into a label URL served by an
// external renderer. It does no IO itself.
type LinkQRRenderer struct {
	baseURL string
}

var _ QRRendererInterface = (*LinkQRRenderer)(nil)

func NewLinkQRRenderer(baseURL string) *LinkQRRenderer {
	return &LinkQRRenderer{baseURL: baseURL}
}

func (r *LinkQRRenderer) Render(_ context.Context, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("label content is empty")
	}
	return fmt.Sprintf("%s/labels/%s.png", r.baseURL, url.PathEscape(content)), nil
}

// LogMailer stands in when no mail transport is configured. Confirmations
// are recorded in the log instead of delivered.
type LogMailer struct {
	logger logging.LoggerInterface
}

var _ MailerInterface = (*LogMailer)(nil)

func NewLogMailer(logger logging.LoggerInterface) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendReservationConfirmation(_ context.Context, recipient string, item *types.Item, reservation *types.Reservation) error {
	m.logger.Infof("reservation %s confirmed for %s: %d x %s", reservation.ID, recipient, reservation.Quantity, item.Name)
	return nil
}
