package wikipedia

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/xwstats/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClientWithURL(srv.URL+"/w/api.php", srv.URL+"/pageviews", newTestLogger())
	c.retryDelay = time.Millisecond
	return c
}

func TestClient_Exists_Found(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/w/api.php" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("action") != "query" || q.Get("format") != "json" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("titles") != "ice cream" {
			t.Errorf("titles = %q, want %q", q.Get("titles"), "ice cream")
		}
		if q.Has("redirects") {
			t.Error("Exists must not follow redirects")
		}
		if ua := r.Header.Get("User-Agent"); ua != defaultUserAgent {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":{"normalized":[{"from":"ice cream","to":"Ice cream"}],"pages":{"15029":{"pageid":15029,"ns":0,"title":"Ice cream"}}}}`))
	}))
	defer srv.Close()

	ok, err := newTestClient(srv).Exists(context.Background(), "ice cream")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected article to exist")
	}
}

func TestClient_Exists_Missing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"ns":0,"title":"Esnex","missing":""}}}}`))
	}))
	defer srv.Close()

	ok, err := newTestClient(srv).Exists(context.Background(), "esnex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected article to be missing")
	}
}

func TestClient_Exists_Invalid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"title":"a|b","invalid":""}}}}`))
	}))
	defer srv.Close()

	ok, err := newTestClient(srv).Exists(context.Background(), "a|b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected invalid title to be reported as missing")
	}
}

func TestClient_Exists_BlankTitle(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	ok, err := newTestClient(srv).Exists(context.Background(), "  ")
	if err != nil || ok {
		t.Fatalf("Exists(blank) = %v, %v", ok, err)
	}
	if calls.Load() != 0 {
		t.Error("blank title must not hit the network")
	}
}

func TestClient_RetryOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"query":{"pages":{"1":{"pageid":1,"title":"Usher"}}}}`))
	}))
	defer srv.Close()

	ok, err := newTestClient(srv).Exists(context.Background(), "usher")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected article to exist after retry")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestClient_PersistentFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Exists(context.Background(), "usher")
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("err = %v, want ErrLookupFailed", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", got)
	}
}

func TestClient_NoRetryOn4xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Exists(context.Background(), "usher")
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("err = %v, want ErrLookupFailed", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestClient_BadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Exists(context.Background(), "usher")
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("err = %v, want ErrLookupFailed", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(srv)
	srv.Close()

	_, err := c.Exists(context.Background(), "usher")
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("err = %v, want ErrLookupFailed", err)
	}
}

func TestClient_CanonicalTitle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("redirects") != "1" {
			t.Errorf("expected redirects=1, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"query":{"redirects":[{"from":"CBS","to":"CBS (TV network)"}],"pages":{"42":{"pageid":42,"title":"CBS (TV network)"}}}}`))
	}))
	defer srv.Close()

	title, ok, err := newTestClient(srv).CanonicalTitle(context.Background(), "CBS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || title != "CBS (TV network)" {
		t.Errorf("CanonicalTitle = %q, %v", title, ok)
	}
}

func TestClient_ViewCount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "/pageviews/Ice_cream/daily/2024031300/2024031400"
		if r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		w.Write([]byte(`{"items":[{"timestamp":"2024031300","views":120},{"timestamp":"2024031400","views":80}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	views, err := c.ViewCount(context.Background(), "Ice cream", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views != 200 {
		t.Errorf("views = %d, want 200", views)
	}
}

func TestClient_ViewCount_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	views, err := newTestClient(srv).ViewCount(context.Background(), "Esnex", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views != 0 {
		t.Errorf("views = %d, want 0", views)
	}
}

func TestClient_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"1":{"pageid":1,"title":"A"}}}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{APIURL: srv.URL, RatePerSecond: 0.001, Burst: 1}, newTestLogger())

	if _, err := c.Exists(context.Background(), "a"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Exists(ctx, "b")
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("err = %v, want ErrLookupFailed once the limiter blocks past the deadline", err)
	}
}
