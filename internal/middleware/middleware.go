package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gustavopprado/sistema-reservas/internal/helpers"
)

// VerifiedEmailKey is where the identity middleware stores the email derived
// from a validated bearer token.
const VerifiedEmailKey = "verified_email"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": requestID,
				})
			}
		}
	}
}

// Identity verifies bearer tokens against the identity provider's JWKS and
// stores the verified email in the context, where handlers prefer it over
// any client-supplied email field. With an empty jwksURL the middleware is a
// pass-through and the client-supplied email is trusted.
func Identity(jwksURL string, logger *slog.Logger) gin.HandlerFunc {
	if jwksURL == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	jwks, err := helpers.NewJWKS(jwksURL)
	if err != nil {
		logger.Error("failed to load identity provider JWKS, rejecting all requests", "error", err)
		return func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("identity provider unavailable"))
			c.Abort()
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(jwks, token)
		if err != nil {
			logger.Info("token rejected", "error", err)
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(VerifiedEmailKey, claims.Email)
		c.Next()
	}
}
