package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

func doers(maxBody int64) []Doer {
	return []Doer{
		NewNetHTTP(&http.Client{Timeout: 2 * time.Second}, maxBody),
		NewFastHTTP(&fasthttp.Client{}, 2*time.Second, maxBody),
	}
}

func TestGetSendsHeadersAndReturnsBody(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: want GET, got %s", r.Method)
		}
		got = r.Header.Clone()
		w.Header().Set("X-Served-By", "test")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer server.Close()

	for _, d := range doers(1 << 10) {
		t.Run(d.Name(), func(t *testing.T) {
			h := http.Header{}
			h.Set("x-app-tid", "tenant-1")
			resp, err := d.Get(context.Background(), server.URL+"/token_keys", h)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if resp.StatusCode != http.StatusTeapot {
				t.Errorf("status: want %d, got %d", http.StatusTeapot, resp.StatusCode)
			}
			if string(resp.Body) != `{"keys":[]}` {
				t.Errorf("body: want {\"keys\":[]}, got %s", resp.Body)
			}
			if resp.Header.Get("X-Served-By") != "test" {
				t.Errorf("response header: want test, got %q", resp.Header.Get("X-Served-By"))
			}
			if got.Get("X-App-Tid") != "tenant-1" {
				t.Errorf("request header: want tenant-1, got %q", got.Get("X-App-Tid"))
			}
		})
	}
}

func TestGetBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer server.Close()

	for _, d := range doers(16) {
		t.Run(d.Name(), func(t *testing.T) {
			_, err := d.Get(context.Background(), server.URL, nil)
			if !errors.Is(err, ErrBodyTooLarge) {
				t.Fatalf("expected ErrBodyTooLarge, got %v", err)
			}
		})
	}

	for _, d := range doers(64) {
		t.Run(d.Name()+"/at_limit", func(t *testing.T) {
			resp, err := d.Get(context.Background(), server.URL, nil)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(resp.Body) != 64 {
				t.Errorf("body length: want 64, got %d", len(resp.Body))
			}
		})
	}
}

func TestGetHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(3 * time.Second):
		}
	}))
	defer server.Close()
	defer close(release)

	for _, d := range doers(1 << 10) {
		t.Run(d.Name(), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := d.Get(ctx, server.URL, nil)
			if err == nil {
				t.Fatal("expected timeout error, got nil")
			}
			if elapsed := time.Since(start); elapsed > 2*time.Second {
				t.Errorf("request took %s, deadline not honored", elapsed)
			}
		})
	}
}

func TestGetCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, d := range doers(1 << 10) {
		t.Run(d.Name(), func(t *testing.T) {
			_, err := d.Get(ctx, "http://127.0.0.1:1/", nil)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}
