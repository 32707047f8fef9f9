// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name           string
		value          string
		allowedSchemes []string
		wantErr        bool
	}{
		{"valid https", "https://cimeika.com", []string{"http", "https"}, false},
		{"valid with port", "http://localhost:8080", []string{"http", "https"}, false},
		{"empty url", "", []string{"http"}, true},
		{"no host", "https://", []string{"https"}, true},
		{"invalid scheme", "ftp://cimeika.com", []string{"http", "https"}, true},
		{"relative", "/sitemap.xml", []string{"https"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("baseURL", tt.value, tt.allowedSchemes)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"port only", ":8080", false},
		{"host and port", "127.0.0.1:9000", false},
		{"empty", "", true},
		{"missing port", "localhost", true},
		{"port zero", ":0", true},
		{"port not numeric", ":http", true},
		{"port out of range", ":70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("listenAddr", tt.addr)
			if tt.wantErr == v.IsValid() {
				t.Errorf("ListenAddr(%q) valid=%v, wantErr=%v (%v)", tt.addr, v.IsValid(), tt.wantErr, v.Err())
			}
		})
	}
}

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr bool
	}{
		{"in range", 60, 1, 500, false},
		{"at min", 1, 1, 500, false},
		{"at max", 500, 1, 500, false},
		{"below min", 0, 1, 500, true},
		{"above max", 501, 1, 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("title_max", tt.value, tt.min, tt.max)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Lists(t *testing.T) {
	v := New()
	v.NonEmptyList("states", []string{"fatigue"})
	v.Unique("states", []string{"fatigue", "joy"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v = New()
	v.NonEmptyList("intents", nil)
	v.Unique("states", []string{"joy", "loss", "joy"})
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", got, v.Err())
	}
	if !strings.Contains(v.Err().Error(), `duplicate value "joy"`) {
		t.Errorf("missing duplicate detail: %v", v.Err())
	}
}

func TestValidator_Contains(t *testing.T) {
	v := New()
	v.Contains("hreflang.en", "/en/{v1}/{v2}", "{v1}", "{v2}")
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v = New()
	v.Contains("hreflang.uk", "/uk/{v1}", "{v1}", "{v2}")
	if v.IsValid() {
		t.Fatal("expected missing placeholder error")
	}
	if !strings.Contains(v.Err().Error(), "must contain {v2}") {
		t.Errorf("unexpected message: %v", v.Err())
	}
}

func TestValidator_NotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"non-empty", "en", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.NotEmpty("canonical_lang", tt.value)
			if tt.wantErr == v.IsValid() {
				t.Errorf("NotEmpty(%q) valid=%v", tt.value, v.IsValid())
			}
		})
	}
}

func TestValidator_MultipleErrors(t *testing.T) {
	v := New()

	v.Port("port", 0)
	v.URL("url", "", []string{"http"})
	v.NotEmpty("name", "")

	if v.IsValid() {
		t.Fatal("expected errors, got none")
	}
	if got := len(v.Errors()); got != 3 {
		t.Errorf("expected 3 errors, got %d", got)
	}

	err := v.Err()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	for _, field := range []string{"port", "url", "name"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error message should mention %q", field)
		}
	}
}
