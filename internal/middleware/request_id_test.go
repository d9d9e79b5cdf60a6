package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/arthurazevedods/maker-challenge-server/internal/server"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			handler := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler: %v", err)
			}

			header := rec.Header().Get(RequestIDHeader)
			if seen == "" || seen != header {
				t.Fatalf("context id %q, header %q", seen, header)
			}
			if tt.incoming != "" && seen != tt.incoming {
				t.Fatalf("incoming id not reused: %q", seen)
			}
			if tt.incoming == "" {
				if _, err := uuid.Parse(seen); err != nil {
					t.Fatalf("generated id is not a uuid: %q", seen)
				}
			}
		})
	}
}

func TestGetLoggerFallsBackToNop(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if GetLogger(c) == nil {
		t.Fatalf("expected a no-op logger")
	}
}

func TestEnhanceContextStoresRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf)
	enhancer := NewContextEnhancer(&server.Server{Logger: &root})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/equipes", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequestID()(enhancer.EnhanceContext()(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		GetLogger(c).Info().Msg("from handler")
		return nil
	}))
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %q", buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"request_id":"req-42"`) || !strings.Contains(line, `"method":"POST"`) {
			t.Fatalf("log line lacks request fields: %s", line)
		}
	}
}
