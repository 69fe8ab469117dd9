package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/config"
)

func TestCachePayloadFraming(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"date":"2025-07-04"}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header = %v", gotHdr)
	}
	if len(gotHdr["X-Custom"]) != 2 {
		t.Errorf("multi-value header lost: %v", gotHdr["X-Custom"])
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestCachePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {}, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Errorf("decodePayload(%v) accepted short input", bs)
		}
	}
	// Header length pointing past the end must be refused.
	bad := make([]byte, 8)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Error("decodePayload accepted oversized header length")
	}
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	e := echo.New()
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "fresh")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/day-layout", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called || rec.Code != http.StatusOK || rec.Body.String() != "fresh" {
		t.Fatalf("pass-through broken: called=%v code=%d body=%q", called, rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Error("disabled cache should not set X-Cache")
	}
}

func TestRateLimiterDisabledIsPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	e := echo.New()
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/bookings")
	c.Set("account_id", uint64(7))

	tests := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:203.0.113.9"},
		{"user", "rl:user:7"},
		{"route", "rl:route:GET /v1/bookings"},
		{"ip_user_route", "rl:ip:203.0.113.9:user:7:route:GET /v1/bookings"},
	}
	for _, tt := range tests {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tt.strategy}
		if got := buildRateKey(cfg, c); got != tt.want {
			t.Errorf("strategy %s: key = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}

func TestCurrentAccountIDAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := currentAccountID(c); got != "anon" {
		t.Errorf("currentAccountID = %q, want anon", got)
	}
}
