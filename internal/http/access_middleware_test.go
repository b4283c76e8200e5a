package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"style-finder/internal/service"
)

type gateAuthorizer struct {
	gate *service.AccessGate
}

func (g gateAuthorizer) Authorize(secret string) error {
	return g.gate.Check(secret)
}

func protectedRouter(auth accessAuthorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AccessSecretMiddleware(auth), func(c *gin.Context) {
		if GetAccessSecret(c) == "" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func requestWithSecret(r http.Handler, secret string) int {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if secret != "" {
		req.Header.Set(AccessSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestAccessSecretMiddleware_AllowsConfiguredSecret(t *testing.T) {
	gate, err := service.NewAccessGate("open-sesame", "")
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	if code := requestWithSecret(protectedRouter(gateAuthorizer{gate}), "open-sesame"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestAccessSecretMiddleware_Rejects(t *testing.T) {
	gate, err := service.NewAccessGate("open-sesame", "")
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	r := protectedRouter(gateAuthorizer{gate})

	if code := requestWithSecret(r, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing secret, got %d", code)
	}
	if code := requestWithSecret(r, "open-sesame!"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", code)
	}
	if code := requestWithSecret(r, "  open-sesame  "); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for padded secret, got %d", code)
	}
}

func TestAccessSecretMiddleware_NotConfigured(t *testing.T) {
	if code := requestWithSecret(protectedRouter(nil), "anything"); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without gate, got %d", code)
	}

	var svc *service.AssessmentService
	if code := requestWithSecret(protectedRouter(svc), "anything"); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unconfigured service, got %d", code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(service.NewMemoryRateLimiter(time.Minute, 2)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRateLimitMiddleware_NilLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", RateLimitMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
