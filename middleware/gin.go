// Package middleware provides HTTP framework integrations for logzero.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/metachris/logzero"
)

// RequestLogger returns a gin middleware that logs every request through
// the given logger. Responses with a 5xx status log at ERROR, 4xx at
// WARNING, everything else at INFO.
func RequestLogger(logger *logzero.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		level := logzero.INFO
		switch {
		case status >= 500:
			level = logzero.ERROR
		case status >= 400:
			level = logzero.WARNING
		}

		logger.Log(level, "%s %s %d %s %s",
			c.Request.Method, path, status, time.Since(start), c.ClientIP())
	}
}
