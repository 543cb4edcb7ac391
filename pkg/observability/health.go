package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Status    string            `json:"status"`
}

// HealthChecker manages health checks for the service
type HealthChecker struct {
	db      Pinger
	grpc    *health.Server
	timeout time.Duration
}

// NewHealthChecker creates a new HealthChecker. db may be nil.
func NewHealthChecker(db Pinger) *HealthChecker {
	return &HealthChecker{
		db:      db,
		timeout: 2 * time.Second,
	}
}

// WithGRPCHealth mirrors every check into the given gRPC health server
func (h *HealthChecker) WithGRPCHealth(srv *health.Server) *HealthChecker {
	h.grpc = srv
	return h
}

// Check performs health checks and returns the status
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	checks := make(map[string]string)
	overallStatus := "healthy"

	if h.db != nil {
		dbCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		if err := h.db.Ping(dbCtx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.grpc != nil {
		serving := healthpb.HealthCheckResponse_SERVING
		if overallStatus != "healthy" {
			serving = healthpb.HealthCheckResponse_NOT_SERVING
		}
		h.grpc.SetServingStatus("", serving)
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}

// HealthHandler returns an HTTP handler for health checks
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(status)
	}
}
