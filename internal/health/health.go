// Package health reports service liveness over the standard gRPC health protocol.
// The service itself stays SERVING while the remote database is down because
// every read and write falls back to the local store; only the "remote"
// sub-service flips.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	RemoteService   = "remote"
	DefaultInterval = 15 * time.Second
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Checker struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
	remoteUp atomic.Bool
	logger   logger.ZapLogger
}

// NewChecker tracks db. A nil db means the service runs local-only and the
// remote sub-service is reported NOT_SERVING for good.
func NewChecker(db Pinger, interval time.Duration, log logger.ZapLogger) *Checker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Checker{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
		logger:   log,
	}
	c.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	c.server.SetServingStatus(RemoteService, healthpb.HealthCheckResponse_NOT_SERVING)
	return c
}

func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
}

func (c *Checker) RemoteUp() bool {
	return c.remoteUp.Load()
}

// Check pings the remote once and publishes the result.
func (c *Checker) Check(ctx context.Context) bool {
	if c.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	err := c.db.PingContext(ctx)
	up := err == nil
	if prev := c.remoteUp.Swap(up); prev != up {
		if up {
			c.logger.Info("Remote database reachable")
		} else {
			c.logger.Warn("Remote database unreachable, serving from local store", zap.Error(err))
		}
	}

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if up {
		status = healthpb.HealthCheckResponse_SERVING
	}
	c.server.SetServingStatus(RemoteService, status)
	return up
}

// Run checks on every tick until ctx is done, then marks everything NOT_SERVING.
func (c *Checker) Run(ctx context.Context) {
	if c.db == nil {
		<-ctx.Done()
		c.server.Shutdown()
		return
	}

	c.Check(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}
