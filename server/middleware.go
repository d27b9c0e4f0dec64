/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger attaches a request-scoped logger to the request context and
// logs each completed request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		log := clog.FromContext(ctx).With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Request = c.Request.WithContext(clog.WithLogger(ctx, log))
		c.Header("X-Request-Id", requestID)

		c.Next()

		log.With("status", c.Writer.Status(), "latency", time.Since(start).String()).
			Infof("Handled %s %s", c.Request.Method, c.Request.URL.Path)
	}
}
