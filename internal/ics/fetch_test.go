package ics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientGetRevalidatesWithETag(t *testing.T) {
	const body = "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	var hits, notModified int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("If-None-Match") == `"v1"` {
			notModified++
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	c := NewClient(t.TempDir())
	ctx := context.Background()

	got, err := c.Get(ctx, srv.URL)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if string(got) != body {
		t.Errorf("first Get body = %q", got)
	}

	got, err = c.Get(ctx, srv.URL)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if string(got) != body {
		t.Errorf("cached body = %q", got)
	}
	if hits != 2 || notModified != 1 {
		t.Errorf("hits = %d, 304s = %d; want 2 and 1", hits, notModified)
	}
}

func TestClientGetFallsBackToCacheWhenUnreachable(t *testing.T) {
	const body = "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, body)
	}))

	c := NewClient(t.TempDir())
	ctx := context.Background()

	if _, err := c.Get(ctx, srv.URL); err != nil {
		t.Fatalf("priming Get: %v", err)
	}
	srv.Close()

	got, err := c.Get(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Get after server shutdown: %v", err)
	}
	if string(got) != body {
		t.Errorf("fallback body = %q", got)
	}
}

func TestClientGetEmptyURL(t *testing.T) {
	if _, err := NewClient(t.TempDir()).Get(context.Background(), ""); err == nil {
		t.Error("empty URL accepted")
	}
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://example.com/private/feed.ics?token=secret")
	if got != "https://example.com/..." {
		t.Errorf("redactURL = %q", got)
	}
	if redacted := redactURL("::bad::"); redacted != "(redacted)" {
		t.Errorf("redactURL on junk = %q", redacted)
	}
}
