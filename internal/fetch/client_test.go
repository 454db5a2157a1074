package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nao1215/neocc/internal/model"
)

// newTestServer serves fixed responses keyed on the request path.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		_, _ = w.Write(append([]byte{0xEF, 0xBB, 0xBF}, []byte("2023DW\n")...))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/forbidden", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/large", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestFetch tests status classification and decoding.
func TestFetch(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	c := New(
		WithHTTPClient(srv.Client()),
		WithUserAgent("test-agent"),
		WithMaxBodySize(1024),
		WithMetrics(metrics),
	)

	t.Run("ok", func(t *testing.T) {
		doc, err := c.Fetch(context.Background(), srv.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Text != "2023DW\n" {
			t.Errorf("BOM not stripped: %q", doc.Text)
		}
		if doc.FromCache {
			t.Error("document should not come from cache")
		}
		if got := testutil.ToFloat64(metrics.requests.WithLabelValues(outcomeOK)); got != 1 {
			t.Errorf("ok requests = %v", got)
		}
	})

	tests := []struct {
		path string
		want error
	}{
		{"/missing", model.ErrDataUnavailable},
		{"/down", model.ErrTransientServer},
		{"/forbidden", model.ErrMalformedContent},
		{"/large", model.ErrMalformedContent},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := c.Fetch(context.Background(), srv.URL+tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("connection refused is transient", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()
		_, err := c.Fetch(context.Background(), url+"/ok")
		if !IsTransient(err) {
			t.Errorf("expected a transient error, got %v", err)
		}
	})

	t.Run("cancelled context is not transient", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Fetch(ctx, srv.URL+"/ok")
		if err == nil || IsTransient(err) {
			t.Errorf("expected a non-transient error, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// memoryCache is an in-memory Cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	docs map[string]*model.Document
	now  time.Time
}

func (m *memoryCache) Get(_ context.Context, url string, maxAge time.Duration) (*model.Document, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[url]
	if !ok || m.now.Sub(doc.FetchedAt) > maxAge {
		return nil, false, nil
	}
	cp := *doc
	cp.FromCache = true
	return &cp, true, nil
}

func (m *memoryCache) Put(_ context.Context, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.URL] = doc
	return nil
}

// TestFetchCache tests that a fresh cached document avoids the network.
func TestFetchCache(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("body"))
	}))
	t.Cleanup(srv.Close)

	cache := &memoryCache{docs: map[string]*model.Document{}, now: time.Now()}
	metrics := NewMetrics(prometheus.NewRegistry())
	c := New(WithHTTPClient(srv.Client()), WithCache(cache, time.Hour), WithMetrics(metrics))

	first, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("expected one network hit, got %d", n)
	}
	if !second.FromCache || second.Hash != first.Hash {
		t.Errorf("second fetch should be the cached copy: %+v", second)
	}
	if got := testutil.ToFloat64(metrics.cacheHits); got != 1 {
		t.Errorf("cache hits = %v", got)
	}

	cache.now = time.Now().Add(2 * time.Hour)
	if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("stale cache entry should be refetched, hits = %d", n)
	}

	cache.now = time.Now()
	if _, err := c.Fetch(WithoutCache(context.Background()), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("bypassed cache should hit the network, hits = %d", n)
	}
}

// TestWithRateLimit tests limiter configuration.
func TestWithRateLimit(t *testing.T) {
	t.Parallel()

	if c := New(WithRateLimit(0)); c.limiter != nil {
		t.Error("zero rate should disable the limiter")
	}
	c := New(WithRateLimit(2))
	if c.limiter == nil || c.limiter.Limit() != 2 {
		t.Errorf("unexpected limiter %+v", c.limiter)
	}
}

// TestWriteTextfile tests the prometheus textfile export.
func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Retry()
	m.observe(outcomeOK, time.Second, 10)

	path := filepath.Join(t.TempDir(), "neocc.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"neocc_query_retries_total 1", `neocc_fetch_requests_total{outcome="ok"} 1`, "neocc_fetch_response_bytes_total 10"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}

	var nilMetrics *Metrics
	nilMetrics.Retry()
	nilMetrics.observe(outcomeOK, time.Second, 1)
}
