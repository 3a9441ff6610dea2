package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger logs every request through zap, adds the errors handlers
// attached with c.Error, and turns panics into a JSON 500.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic recovered",
					append(requestFields(c, start),
						zap.String("panic", fmt.Sprintf("%v", recovered)),
						zap.ByteString("stack", debug.Stack()),
					)...,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal server error",
					},
				})
				return
			}

			fields := requestFields(c, start)
			switch {
			case len(c.Errors) > 0:
				for _, e := range c.Errors {
					log.Error("request error", append(fields, zap.Error(e.Err))...)
				}
			case c.Writer.Status() >= http.StatusInternalServerError:
				log.Error("request failed", fields...)
			case c.Writer.Status() >= http.StatusBadRequest:
				log.Warn("request rejected", fields...)
			default:
				log.Info("request", fields...)
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time) []zap.Field {
	return []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
		zap.Uint("admin_id", c.GetUint(AdminIDKey)),
		zap.String("request_id", requestID(c)),
		zap.Duration("latency", time.Since(start)),
	}
}
