package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/callsight/server/middleware"
)

func rateLimitedRouter(cfg middleware.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_BlocksOverBudget(t *testing.T) {
	r := rateLimitedRouter(middleware.RateLimitConfig{RequestsPerMinute: 3})

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after budget exhausted, got %d", rr.Code)
	}
}

func TestRateLimit_PerKeyIsolation(t *testing.T) {
	r := rateLimitedRouter(middleware.RateLimitConfig{
		RequestsPerMinute: 1,
		KeyFunc: func(c *gin.Context) string {
			return c.GetHeader("X-Client")
		},
	})

	send := func(client string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", http.NoBody)
		req.Header.Set("X-Client", client)
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("a"); code != http.StatusOK {
		t.Fatalf("client a first request: expected 200, got %d", code)
	}
	if code := send("a"); code != http.StatusTooManyRequests {
		t.Fatalf("client a second request: expected 429, got %d", code)
	}
	if code := send("b"); code != http.StatusOK {
		t.Fatalf("client b should have its own budget, got %d", code)
	}
}
