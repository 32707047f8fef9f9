// SPDX-License-Identifier: MIT
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContextWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		requestID string
		want      string
	}{
		{
			name:      "nil context",
			ctx:       nil,
			requestID: "test-id-123",
			want:      "test-id-123",
		},
		{
			name:      "background context",
			ctx:       context.Background(),
			requestID: "req-456",
			want:      "req-456",
		},
		{
			name:      "empty request ID",
			ctx:       context.Background(),
			requestID: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.requestID)
			got := RequestIDFromContext(ctx)
			if got != tt.want {
				t.Errorf("RequestIDFromContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromContextFallsBackToBase(t *testing.T) {
	if l := FromContext(nil); l == nil { //nolint:staticcheck
		t.Fatal("expected base logger for nil context")
	}
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("expected base logger for empty context")
	}
}

func TestWithContextAddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	defer Configure(Config{})

	ctx := ContextWithRequestID(context.Background(), "rid-1")
	ctx = ContextWithCorrelationID(ctx, "cid-1")
	l := WithContext(ctx, WithComponent("unit"))
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry[FieldRequestID] != "rid-1" {
		t.Errorf("request_id = %v", entry[FieldRequestID])
	}
	if entry[FieldCorrelationID] != "cid-1" {
		t.Errorf("correlation_id = %v", entry[FieldCorrelationID])
	}
	if entry[FieldComponent] != "unit" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
	if entry["service"] != "test" {
		t.Errorf("service = %v", entry["service"])
	}
}

func TestMiddlewarePreservesFlusher(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})
	defer Configure(Config{})

	var flushed bool
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("chunk"))
		f, ok := w.(http.Flusher)
		if ok {
			f.Flush()
			flushed = true
		}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if !flushed {
		t.Fatal("wrapped writer should implement http.Flusher")
	}
	if !rec.Flushed {
		t.Error("flush did not reach the underlying writer")
	}
	if !strings.Contains(buf.String(), `"bytes":5`) {
		t.Errorf("missing byte count: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("implicit 200 not logged: %s", buf.String())
	}
}

func TestMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})
	defer Configure(Config{})

	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug().Msg("inside")
		w.WriteHeader(http.StatusNotFound)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/seo/en", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"event":"http.request"`) {
		t.Errorf("missing access log event: %s", out)
	}
	if !strings.Contains(out, `"status":404`) {
		t.Errorf("missing status field: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("4xx should log at warn: %s", out)
	}
}
