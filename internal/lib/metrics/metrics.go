// Package metrics регистрирует метрики Prometheus приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expense_tracker"

var (
	// ExpensesCreated — количество добавленных расходов.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Number of inserted ledger rows.",
	})

	// ExpensesRemoved — количество удалённых расходов.
	ExpensesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_removed_total",
		Help:      "Number of deleted ledger rows.",
	})

	// Searches — выполненные поиски по режиму (aggregate, listing).
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Number of searches by mode.",
	}, []string{"mode"})

	// SummaryCache — обращения к кешу помесячных сумм (hit, miss, error).
	SummaryCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_total",
		Help:      "Yearly summary cache lookups by result.",
	}, []string{"result"})

	// LoginFailures — неудачные попытки входа.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Number of rejected logins.",
	})

	// HTTPDuration — длительность HTTP-запросов по маршруту, методу и коду ответа.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
