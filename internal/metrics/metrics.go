// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "classifieds"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	postsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Posts created, by tier snapshot.",
	}, []string{"tier"})

	postsExpiredHidden = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_expired_hidden_total",
		Help:      "Expired posts filtered out of listings.",
	})

	routeDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_denials_total",
		Help:      "Requests refused by route gating.",
	}, []string{"route", "reason"})

	upgrades = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_upgrades_total",
		Help:      "Subscription upgrades by source and target tier.",
	}, []string{"from", "to"})
)

func PostCreated(tier string) { postsCreated.WithLabelValues(tier).Inc() }

func ExpiredHidden(n int) {
	if n > 0 {
		postsExpiredHidden.Add(float64(n))
	}
}

func RouteDenied(route, reason string) { routeDenials.WithLabelValues(route, reason).Inc() }

func Upgraded(from, to string) { upgrades.WithLabelValues(from, to).Inc() }

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
