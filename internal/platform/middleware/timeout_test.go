package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRequestTimeout_CompletesWithinDeadline(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/graphql", nil), rec)

	called := false
	handler := func(c echo.Context) error {
		called = true
		if _, ok := c.Request().Context().Deadline(); !ok {
			t.Error("expected request context to carry a deadline")
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := RequestTimeout(5 * time.Second)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequestTimeout_ReturnsTimeoutOnExpiry(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/graphql", nil), rec)

	handler := func(c echo.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return c.String(http.StatusOK, "ok")
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	if err := RequestTimeout(50 * time.Millisecond)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Message == "" {
		t.Errorf("expected one error message, got %+v", body)
	}
}

func TestRequestTimeout_HandlerDoneBeforeNextRequest(t *testing.T) {
	e := echo.New()
	e.Use(RequestTimeout(20 * time.Millisecond))

	var mu sync.Mutex
	var seen []string
	e.GET("/slow", func(c echo.Context) error {
		time.Sleep(60 * time.Millisecond)
		mu.Lock()
		seen = append(seen, c.Request().URL.Path)
		mu.Unlock()
		return c.Request().Context().Err()
	})
	e.GET("/fast", func(c echo.Context) error {
		return c.String(http.StatusOK, "fast")
	})

	slow := httptest.NewRecorder()
	e.ServeHTTP(slow, httptest.NewRequest(http.MethodGet, "/slow", nil))
	fast := httptest.NewRecorder()
	e.ServeHTTP(fast, httptest.NewRequest(http.MethodGet, "/fast", nil))

	if slow.Code != http.StatusGatewayTimeout {
		t.Errorf("slow: expected 504, got %d", slow.Code)
	}
	if fast.Code != http.StatusOK || fast.Body.String() != "fast" {
		t.Errorf("fast: expected 200 \"fast\", got %d %q", fast.Code, fast.Body.String())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "/slow" {
		t.Errorf("slow handler saw %v, want [/slow]", seen)
	}
}

func TestRequestTimeout_HandlerErrorWithinDeadline(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/graphql", nil), rec)

	want := errors.New("db down")
	err := RequestTimeout(5 * time.Second)(func(echo.Context) error { return want })(c)
	if !errors.Is(err, want) {
		t.Fatalf("expected handler error to pass through, got %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %d %q", rec.Code, rec.Body.String())
	}
}
