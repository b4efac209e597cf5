package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient() *Client {
	return NewClient(Options{
		UserAgent: "blogsmith-test/1.0",
		Timeout:   5 * time.Second,
		RateLimit: 0, // no limiting in tests
	})
}

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != `{"ok": true}` {
		t.Errorf("body = %q", body)
	}
}

func TestGetSetsDefaultAndCustomHeaders(t *testing.T) {
	var gotUA, gotAccept, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotCustom = r.Header.Get("X-Custom")
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL, map[string]string{"X-Custom": "yes"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotUA != "blogsmith-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept == "" {
		t.Error("Accept header not set")
	}
	if gotCustom != "yes" {
		t.Errorf("X-Custom = %q", gotCustom)
	}
}

func TestGetHeaderOverridesDefault(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL, map[string]string{"User-Agent": "blogsmith/1.0"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotUA != "blogsmith/1.0" {
		t.Errorf("User-Agent = %q, want the per-call override", gotUA)
	}
}

func TestGetNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient().Get(context.Background(), srv.URL, nil); err == nil {
		t.Error("Get() on 503 succeeded, want error")
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := testClient().Get(ctx, srv.URL, nil); err == nil {
		t.Error("Get() with expired context succeeded, want error")
	}
}
