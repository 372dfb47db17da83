// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
)

const (
	namespace = "tokenvm"

	operationLabel = "operation"
	resultLabel    = "result"
	vaultLabel     = "vault"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	vaultBalance *prometheus.GaugeVec
}

func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations",
				Help:      "Number of executed operations",
			},
			[]string{operationLabel, resultLabel},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Time spent executing operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{operationLabel},
		),
		vaultBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "vault_balance",
				Help:      "Token balance of each vault",
			},
			[]string{vaultLabel},
		),
	}

	err := errors.Join(
		registerer.Register(m.operations),
		registerer.Register(m.duration),
		registerer.Register(m.vaultBalance),
	)
	return m, err
}

// Observe records the outcome of operation.
func (m *Metrics) Observe(operation string, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) SetVaultBalances(balances map[vault.Name]uint64) {
	for name, balance := range balances {
		m.vaultBalance.WithLabelValues(name.String()).Set(float64(balance))
	}
}
