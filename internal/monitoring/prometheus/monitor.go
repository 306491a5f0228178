// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, seconds float64) error {
	metric, err := m.responseTime.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Observe(seconds)
	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, available float64) error {
	metric, err := m.dependencyAvailability.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Set(available)
	return nil
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "response_time_seconds",
			Help:      "Duration of HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"route", "method", "status"},
	)

	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "Availability of external dependencies, 1 is up, 0 is down.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"dependency"},
	)

	if err := prometheus.Register(m.responseTime); err != nil {
		logger.Errorf("failed to register response time metric: %v", err)
	}

	if err := prometheus.Register(m.dependencyAvailability); err != nil {
		logger.Errorf("failed to register dependency availability metric: %v", err)
	}

	return m
}
