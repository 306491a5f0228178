// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

type SecurityLogger struct {
	l *zap.Logger
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{
		l: l.Named("security"),
	}
}

func (s *SecurityLogger) AuthnSuccess(subject string) {
	s.l.Info("authentication succeeded", zap.String("event", "authn_success"), zap.String("subject", subject))
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.l.Warn("authentication failed", zap.String("event", "authn_failure"), zap.String("reason", reason))
}

func (s *SecurityLogger) TokenRefresh(subject string) {
	s.l.Info("token pair rotated", zap.String("event", "token_refresh"), zap.String("subject", subject))
}

func (s *SecurityLogger) SubscriptionDenied(subject, tenantID string) {
	s.l.Warn("subscription access denied", zap.String("event", "subscription_denied"), zap.String("subject", subject), zap.String("tenant_id", tenantID))
}

func (s *SecurityLogger) TenantStoreRegistered(tenantID string) {
	s.l.Info("tenant store registered", zap.String("event", "tenant_store_registered"), zap.String("tenant_id", tenantID))
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system_shutdown"))
}
