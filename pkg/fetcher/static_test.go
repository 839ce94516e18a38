package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStaticFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("expected custom header, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><span class="price">$19.99</span></body></html>`))
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	content, err := f.Fetch(context.Background(), srv.URL, Options{Headers: map[string]string{"X-Test": "yes"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", content.StatusCode)
	}
	if !strings.Contains(content.HTML, "$19.99") {
		t.Errorf("unexpected body: %q", content.HTML)
	}
	if !strings.HasPrefix(content.ContentType, "text/html") {
		t.Errorf("unexpected content type %q", content.ContentType)
	}
}

func TestStaticFetcher_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{UserAgent: "pagecheck-test"})
	if _, err := f.Fetch(context.Background(), srv.URL, Options{}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "pagecheck-test" {
		t.Errorf("expected configured user agent, got %q", got)
	}
}

func TestStaticFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	_, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err == nil {
		t.Fatal("expected error for 404")
	}

	code, ok := StatusCode(err)
	if !ok || code != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, %v; want 404, true", code, ok)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestStaticFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestStaticFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewStatic(StaticConfig{}).Fetch(context.Background(), url, Options{})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if _, ok := StatusCode(err); ok {
		t.Error("network failure should not carry a status code")
	}
}

func TestStaticFetcher_Type(t *testing.T) {
	if got := NewStatic(StaticConfig{}).Type(); got != "static" {
		t.Errorf("Type() = %q", got)
	}
}
