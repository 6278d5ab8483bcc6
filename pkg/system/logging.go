// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ReqLoggerKey is the context key used to store request-scoped logger in gin context.
	ReqLoggerKey = "reqLogger"
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "requestID"
	// RequestIDHeader is read from incoming requests and echoed on responses.
	RequestIDHeader = "X-Request-ID"
)

// GetReqLogger returns the request-scoped sugared logger from gin.Context if present,
// otherwise the provided fallback.
func GetReqLogger(c *gin.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return fallback
	}
	if v, ok := c.Get(ReqLoggerKey); ok {
		if l, ok2 := v.(*zap.SugaredLogger); ok2 {
			return l
		}
	}
	return fallback
}

// RequestLogger assigns every request an id (reusing a client supplied
// X-Request-ID) and stores a logger annotated with it in the gin context.
func RequestLogger(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Set(ReqLoggerKey, EnrichReqLoggerWithClient(c, base.With("requestID", id)))
		c.Next()
	}
}

// EnrichReqLoggerWithClient annotates the logger with the client address and
// the route being served.
func EnrichReqLoggerWithClient(c *gin.Context, reqLogger *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil || reqLogger == nil {
		return reqLogger
	}
	if ip := c.ClientIP(); ip != "" {
		reqLogger = reqLogger.With("clientIP", ip)
	}
	if c.Request != nil {
		reqLogger = reqLogger.With("method", c.Request.Method, "path", c.Request.URL.Path)
	}
	return reqLogger
}
