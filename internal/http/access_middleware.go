package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"style-finder/internal/service"
)

// AccessSecretHeader transporta el secreto compartido del cuestionario.
const AccessSecretHeader = "X-Access-Secret"

const accessSecretKey = "access_secret"

type accessAuthorizer interface {
	Authorize(secret string) error
}

// AccessSecretMiddleware valida el secreto antes de mostrar preguntas o puntuar.
func AccessSecretMiddleware(auth accessAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "access gate not configured"})
			c.Abort()
			return
		}

		// Sin TrimSpace: el secreto debe coincidir exactamente.
		secret := c.GetHeader(AccessSecretHeader)
		if secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing access secret"})
			c.Abort()
			return
		}

		if err := auth.Authorize(secret); err != nil {
			if errors.Is(err, service.ErrAccessDenied) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "access gate not configured"})
			}
			c.Abort()
			return
		}

		c.Set(accessSecretKey, secret)
		c.Next()
	}
}

// GetAccessSecret devuelve el secreto ya validado por el middleware.
func GetAccessSecret(c *gin.Context) string {
	return c.GetString(accessSecretKey)
}

// RateLimitMiddleware limita requests por IP antes de evaluar el secreto.
func RateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
