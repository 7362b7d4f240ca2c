package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documo_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is process-global: the underlying collectors register with
// the default registry, which tolerates exactly one registration.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
