// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Health serves /healthz and /health. It never touches dependencies.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

const (
	statusHealthy     = "healthy"
	statusUnreachable = "unreachable"
	checkTimeout      = 3 * time.Second
)

// Full runs every check concurrently and reports each dependency's status.
// The service itself is always reported healthy; the response is 503 when any
// dependency is unreachable.
func Full(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		var mu sync.Mutex
		result := gin.H{"service": statusHealthy}
		healthy := true

		var g errgroup.Group
		for _, name := range names {
			check := checks[name]
			g.Go(func() error {
				status := statusHealthy
				if err := check(ctx); err != nil {
					status = statusUnreachable
				}
				mu.Lock()
				defer mu.Unlock()
				result[name] = status
				if status != statusHealthy {
					healthy = false
				}
				return nil
			})
		}
		_ = g.Wait()

		result["timestamp"] = time.Now().UTC().Format(time.RFC3339)
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, result)
	}
}
