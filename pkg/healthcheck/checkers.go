package healthcheck

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DatabaseChecker checks database connectivity through GORM
type DatabaseChecker struct {
	db *gorm.DB
}

// NewDatabaseChecker creates a database health checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

// Check pings the underlying connection
func (d *DatabaseChecker) Check(ctx context.Context) Check {
	start := time.Now()

	sqlDB, err := d.db.DB()
	if err != nil {
		return Check{
			Status:   StatusUnhealthy,
			Message:  err.Error(),
			Duration: time.Since(start),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return Check{
			Status:   StatusUnhealthy,
			Message:  err.Error(),
			Duration: time.Since(start),
		}
	}

	return Check{Status: StatusHealthy, Duration: time.Since(start)}
}

// Pinger is anything with a context-aware ping, such as a Redis client
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker checks any Pinger-style dependency. Failures degrade rather
// than fail the service: the planner works without its cache backend.
type PingChecker struct {
	pinger   Pinger
	critical bool
}

// NewPingChecker creates a ping-based health checker
func NewPingChecker(pinger Pinger, critical bool) *PingChecker {
	return &PingChecker{pinger: pinger, critical: critical}
}

// Check pings the dependency
func (p *PingChecker) Check(ctx context.Context) Check {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := p.pinger.Ping(ctx); err != nil {
		status := StatusDegraded
		if p.critical {
			status = StatusUnhealthy
		}
		return Check{
			Status:   status,
			Message:  err.Error(),
			Duration: time.Since(start),
		}
	}

	return Check{Status: StatusHealthy, Duration: time.Since(start)}
}

// CustomChecker wraps a plain function as a checker
type CustomChecker struct {
	check func(ctx context.Context) (Status, string)
}

// NewCustomChecker creates a function-backed health checker
func NewCustomChecker(check func(ctx context.Context) (Status, string)) *CustomChecker {
	return &CustomChecker{check: check}
}

// Check runs the wrapped function
func (c *CustomChecker) Check(ctx context.Context) Check {
	start := time.Now()
	status, message := c.check(ctx)
	return Check{
		Status:   status,
		Message:  message,
		Duration: time.Since(start),
	}
}
