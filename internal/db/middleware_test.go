// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
)

// stubClient drives WithTx without a database. commitErr simulates a commit
// failing after the handler ran successfully.
type stubClient struct {
	commitErr error
	txCalls   int
}

func (c *stubClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (c *stubClient) TxStatement(context.Context) (TxInterface, sq.StatementBuilderType, error) {
	return nil, sq.StatementBuilder, nil
}

func (c *stubClient) BeginTx(ctx context.Context) (context.Context, TxInterface, error) {
	return ctx, nil, nil
}

func (c *stubClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txCalls++
	if err := fn(ctx); err != nil {
		return err
	}
	return c.commitErr
}

func (c *stubClient) Close() {}

// errorRecordingLogger captures Errorf entries on top of a noop logger.
type errorRecordingLogger struct {
	logging.LoggerInterface
	entries []string
}

func (l *errorRecordingLogger) Errorf(template string, args ...interface{}) {
	l.entries = append(l.entries, fmt.Sprintf(template, args...))
}

func TestTransactionMiddleware(t *testing.T) {
	tests := []struct {
		name            string
		method          string
		handlerStatus   int
		commitErr       error
		expectedTxCalls int
		expectErrorLog  bool
	}{
		{
			name:            "read requests bypass the transaction",
			method:          http.MethodGet,
			handlerStatus:   http.StatusOK,
			expectedTxCalls: 0,
		},
		{
			name:            "successful write commits silently",
			method:          http.MethodPost,
			handlerStatus:   http.StatusCreated,
			expectedTxCalls: 1,
		},
		{
			name:            "failed handler rolls back and is logged",
			method:          http.MethodPost,
			handlerStatus:   http.StatusInternalServerError,
			expectedTxCalls: 1,
			expectErrorLog:  true,
		},
		{
			name:            "commit failure after a success response is logged at error level",
			method:          http.MethodPost,
			handlerStatus:   http.StatusOK,
			commitErr:       errors.New("connection reset"),
			expectedTxCalls: 1,
			expectErrorLog:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{commitErr: tt.commitErr}
			logger := &errorRecordingLogger{LoggerInterface: logging.NewNoopLogger()}

			handler := TransactionMiddleware(client, logger)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.handlerStatus)
				}),
			)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, "/api/v0/items", nil))

			if rr.Code != tt.handlerStatus {
				t.Errorf("expected status %d, got %d", tt.handlerStatus, rr.Code)
			}
			if client.txCalls != tt.expectedTxCalls {
				t.Errorf("expected %d transaction calls, got %d", tt.expectedTxCalls, client.txCalls)
			}

			if !tt.expectErrorLog {
				if len(logger.entries) != 0 {
					t.Errorf("expected no error log, got %v", logger.entries)
				}
				return
			}
			if len(logger.entries) != 1 || !strings.Contains(logger.entries[0], "rolled back") {
				t.Errorf("expected a rollback error log entry, got %v", logger.entries)
			}
		})
	}
}
