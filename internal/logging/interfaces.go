// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	Security() SecurityLoggerInterface

	Sync() error
}

// SecurityLoggerInterface is the audit channel for security relevant events.
// Entries are emitted on a dedicated logger so they can be shipped separately
// from application logs.
type SecurityLoggerInterface interface {
	AuthnSuccess(subject string)
	AuthnFailure(reason string)
	TokenRefresh(subject string)
	SubscriptionDenied(subject, tenantID string)
	TenantStoreRegistered(tenantID string)
	SystemStartup()
	SystemShutdown()
}
