package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/storage"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// captured is what the test server saw.
type captured struct {
	Method      string
	RequestURI  string
	Header      http.Header
	Body        []byte
	ContentType string
}

type recorder struct {
	mu       sync.Mutex
	requests []captured
}

func (r *recorder) add(c captured) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, c)
}

func (r *recorder) last(t *testing.T) captured {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests)
	return r.requests[len(r.requests)-1]
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.add(captured{
			Method:      r.Method,
			RequestURI:  r.RequestURI,
			Header:      r.Header.Clone(),
			Body:        body,
			ContentType: r.Header.Get("Content-Type"),
		})
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		if handler != nil {
			handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(srv *httptest.Server, store storage.Store) *Client {
	return NewClient(Options{
		BaseURL: srv.URL + "/api",
		Store:   store,
		Timeout: 5 * time.Second,
	})
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(Options{})

	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.False(t, client.IsLoading())
	assert.NotNil(t, client.Loading())
}

func TestGet(t *testing.T) {
	t.Run("joins base URL and endpoint", func(t *testing.T) {
		srv, rec := newTestServer(t, nil)
		client := newTestClient(srv, nil)

		var out map[string]bool
		require.NoError(t, client.Get(context.Background(), "users/me", nil, &out))

		req := rec.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/api/users/me", req.RequestURI)
		assert.Equal(t, map[string]bool{"ok": true}, out)
	})

	t.Run("preserves leading slash verbatim", func(t *testing.T) {
		srv, rec := newTestServer(t, nil)
		client := newTestClient(srv, nil)

		require.NoError(t, client.Get(context.Background(), "/users/me", nil, nil))
		assert.Equal(t, "/api//users/me", rec.last(t).RequestURI)
	})

	t.Run("filters nil query parameters", func(t *testing.T) {
		srv, rec := newTestServer(t, nil)
		client := newTestClient(srv, nil)

		var missing *int
		params := Params{
			"organizationId": "org-1",
			"page":           0,
			"active":         true,
			"ratio":          1.5,
			"tags":           []string{"a", "b"},
			"yearMonth":      nil,
			"size":           missing,
		}
		require.NoError(t, client.Get(context.Background(), "leaderboards/monthly", params, nil))

		req := rec.last(t)
		query := strings.SplitN(req.RequestURI, "?", 2)
		require.Len(t, query, 2)
		assert.Equal(t, "/api/leaderboards/monthly", query[0])

		values := Params(params).Values()
		assert.Equal(t, values.Encode(), query[1])
		assert.NotContains(t, query[1], "yearMonth")
		assert.NotContains(t, query[1], "size")
		assert.Contains(t, query[1], "active=true")
		assert.Contains(t, query[1], "page=0")
		assert.Contains(t, query[1], "ratio=1.5")
		assert.Contains(t, query[1], "tags=a%2Cb")
	})

	t.Run("typed helper decodes body", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"userId":"u-1","totalPoints":2847}`))
		})
		client := newTestClient(srv, nil)

		type dashboard struct {
			UserID      string `json:"userId"`
			TotalPoints int    `json:"totalPoints"`
		}
		got, err := Get[dashboard](context.Background(), client, "users/current", nil)
		require.NoError(t, err)
		assert.Equal(t, dashboard{UserID: "u-1", TotalPoints: 2847}, got)
	})

	t.Run("empty body leaves output untouched", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		client := newTestClient(srv, nil)

		out := map[string]string{"kept": "yes"}
		require.NoError(t, client.Get(context.Background(), "ping", nil, &out))
		assert.Equal(t, "yes", out["kept"])
	})

	t.Run("raw outputs", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		})
		client := newTestClient(srv, nil)

		var s string
		require.NoError(t, client.Get(context.Background(), "text", nil, &s))
		assert.Equal(t, "plain text", s)

		var b []byte
		require.NoError(t, client.Get(context.Background(), "text", nil, &b))
		assert.Equal(t, []byte("plain text"), b)
	})

	t.Run("undecodable body is an error", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		})
		client := newTestClient(srv, nil)

		var out map[string]any
		err := client.Get(context.Background(), "html", nil, &out)
		require.Error(t, err)
		assert.False(t, IsNetworkError(err))
		assert.False(t, client.IsLoading())
	})
}

func TestMutatingRequests(t *testing.T) {
	srv, rec := newTestServer(t, nil)
	client := newTestClient(srv, nil)
	ctx := context.Background()

	body := map[string]any{"actionTypeId": "at-1", "evidence": "log entry"}

	t.Run("post", func(t *testing.T) {
		require.NoError(t, client.Post(ctx, "actions", body, nil))
		req := rec.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.ContentType)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(req.Body, &sent))
		assert.Equal(t, body, sent)
	})

	t.Run("put", func(t *testing.T) {
		_, err := Put[map[string]bool](ctx, client, "actions/a-1/approve", nil)
		require.NoError(t, err)
		req := rec.last(t)
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/actions/a-1/approve", req.RequestURI)
		assert.Equal(t, "application/json", req.ContentType)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.Delete(ctx, "organization/org-1", nil))
		req := rec.last(t)
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "application/json", req.ContentType)
		assert.Empty(t, req.Body)
	})
}

func TestAuthorizationHeader(t *testing.T) {
	srv, rec := newTestServer(t, nil)
	store := storage.NewMemoryStore()
	client := newTestClient(srv, store)
	ctx := context.Background()

	require.NoError(t, client.Get(ctx, "users/me", nil, nil))
	_, present := rec.last(t).Header["Authorization"]
	assert.False(t, present, "no header without a token")

	require.NoError(t, store.Set(storage.AuthTokenKey, "token-one"))
	require.NoError(t, client.Get(ctx, "users/me", nil, nil))
	assert.Equal(t, "Bearer token-one", rec.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Set(storage.AuthTokenKey, "token-two"))
	require.NoError(t, client.Post(ctx, "actions", map[string]string{}, nil))
	assert.Equal(t, "Bearer token-two", rec.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Set(storage.AuthTokenKey, ""))
	require.NoError(t, client.Get(ctx, "users/me", nil, nil))
	_, present = rec.last(t).Header["Authorization"]
	assert.False(t, present, "empty token is treated as absent")

	require.NoError(t, store.Remove(storage.AuthTokenKey))
	require.NoError(t, client.Delete(ctx, "users/u-1", nil))
	_, present = rec.last(t).Header["Authorization"]
	assert.False(t, present)
}

func TestUpload(t *testing.T) {
	type seen struct {
		fileName    string
		fileContent string
		fields      map[string]string
		contentType string
		auth        string
	}
	result := make(chan seen, 1)

	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		fields := map[string]string{}
		for key, values := range r.MultipartForm.Value {
			fields[key] = values[0]
		}
		result <- seen{
			fileName:    header.Filename,
			fileContent: string(content),
			fields:      fields,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"totalRecords":2,"successfulImports":2,"failedImports":0}`))
	})

	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.AuthTokenKey, "upload-token"))
	client := newTestClient(srv, store)

	file := NewFile("actions.csv", []byte("userId,actionTypeId\nu-1,at-1\n"))
	type importResult struct {
		TotalRecords      int `json:"totalRecords"`
		SuccessfulImports int `json:"successfulImports"`
	}
	got, err := Upload[importResult](context.Background(), client, "actions/import", file, map[string]any{
		"organizationId": "org-1",
		"dryRun":         false,
		"skipped":        nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalRecords)

	s := <-result
	assert.Equal(t, "actions.csv", s.fileName)
	assert.Equal(t, "userId,actionTypeId\nu-1,at-1\n", s.fileContent)
	assert.Equal(t, map[string]string{"organizationId": "org-1", "dryRun": "false", "skipped": "null"}, s.fields)
	assert.True(t, strings.HasPrefix(s.contentType, "multipart/form-data"), s.contentType)
	assert.NotContains(t, s.contentType, "application/json")
	assert.Equal(t, "Bearer upload-token", s.auth)
	assert.False(t, client.IsLoading())
}

func TestUploadKeepsNilFields(t *testing.T) {
	fields := make(chan map[string][]string, 1)
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields <- r.MultipartForm.Value
		w.Write([]byte(`{}`))
	})
	client := newTestClient(srv, nil)

	var nilPtr *string
	err := client.Upload(context.Background(), "up", NewFile("a.csv", []byte("x\n")), map[string]any{
		"note":    nil,
		"comment": nilPtr,
		"org":     "o",
	}, nil)
	require.NoError(t, err)

	got := <-fields
	assert.Equal(t, []string{"null"}, got["note"])
	assert.Equal(t, []string{"null"}, got["comment"])
	assert.Equal(t, []string{"o"}, got["org"])
}

func TestLoadingSubscriberMayIssueRequests(t *testing.T) {
	srv, rec := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client := newTestClient(srv, nil)

	var transitions []bool
	var refreshErr error
	refreshed := false
	done := make(chan struct{})
	go func() {
		defer close(done)
		client.Loading().Subscribe(func(loading bool) {
			transitions = append(transitions, loading)
			if !loading && !refreshed {
				refreshed = true
				refreshErr = client.Get(context.Background(), "refresh", nil, nil)
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber calling the client blocked")
	}
	require.NoError(t, refreshErr)
	assert.Equal(t, "/api/refresh", rec.last(t).RequestURI)
	assert.Equal(t, []bool{false, true, false}, transitions)
	assert.False(t, client.IsLoading())
}

func TestUploadRequiresFile(t *testing.T) {
	client := NewClient(Options{})
	err := client.Upload(context.Background(), "actions/import", nil, nil, nil)
	assert.Error(t, err)
	assert.False(t, client.IsLoading())
}

func TestEmptyEndpoint(t *testing.T) {
	client := NewClient(Options{})

	var transitions []bool
	client.Loading().Subscribe(func(loading bool) { transitions = append(transitions, loading) })

	err := client.Get(context.Background(), "", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyEndpoint)
	assert.Equal(t, []bool{false}, transitions)
}

func TestHTTPStatusError(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user not found"}`))
	})
	client := newTestClient(srv, nil)

	var transitions []bool
	client.Loading().Subscribe(func(loading bool) { transitions = append(transitions, loading) })

	err := client.Get(context.Background(), "users/missing", nil, nil)
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, "application/json", statusErr.ContentType())
	assert.False(t, IsNetworkError(err))

	status, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, 404, status)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, statusErr.DecodeBody(&body))
	assert.Equal(t, "user not found", body.Message)

	assert.False(t, client.IsLoading())
	assert.Equal(t, []bool{false, true, false}, transitions)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	metrics := monitoring.NewMetrics()
	client := NewClient(Options{
		BaseURL: base + "/api",
		Metrics: metrics,
		Logger:  logging.Wrap(zap.New(core)),
	})

	err := client.Get(context.Background(), "users/me", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	_, hasStatus := StatusCode(err)
	assert.False(t, hasStatus)

	assert.False(t, client.IsLoading())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestErrors.WithLabelValues("GET", "network")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))
}

func TestContextCancellation(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	client := newTestClient(srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "users/me", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, client.IsLoading())
}

func TestRateLimitedCancellation(t *testing.T) {
	srv, rec := newTestServer(t, nil)
	client := newTestClient(srv, nil)
	client.SetRateLimit(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "users/me", nil, nil)
	assert.True(t, IsNetworkError(err))
	assert.False(t, client.IsLoading())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.requests)
}

func TestLoadingStateConcurrentRequests(t *testing.T) {
	arrived := make(chan string, 2)
	release := map[string]chan struct{}{
		"/api/slow/1": make(chan struct{}),
		"/api/slow/2": make(chan struct{}),
	}
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		arrived <- r.URL.Path
		<-release[r.URL.Path]
		w.Write([]byte(`{}`))
	})

	metrics := monitoring.NewMetrics()
	client := NewClient(Options{BaseURL: srv.URL + "/api", Metrics: metrics})

	var mu sync.Mutex
	var transitions []bool
	client.Loading().Subscribe(func(loading bool) {
		mu.Lock()
		transitions = append(transitions, loading)
		mu.Unlock()
	})

	assert.False(t, client.IsLoading())

	done1 := make(chan error, 1)
	go func() { done1 <- client.Get(context.Background(), "slow/1", nil, nil) }()
	assert.Equal(t, "/api/slow/1", <-arrived)
	assert.True(t, client.IsLoading())

	done2 := make(chan error, 1)
	go func() { done2 <- client.Get(context.Background(), "slow/2", nil, nil) }()
	assert.Equal(t, "/api/slow/2", <-arrived)
	assert.Equal(t, 2, client.Loading().InFlight())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsInFlight))

	close(release["/api/slow/1"])
	require.NoError(t, <-done1)
	assert.True(t, client.IsLoading(), "second call still in flight")
	assert.Equal(t, 1, client.Loading().InFlight())

	close(release["/api/slow/2"])
	require.NoError(t, <-done2)
	assert.False(t, client.IsLoading())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false, true, false}, transitions)
}

func TestSharedLoadingState(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	loading := NewLoadingState()

	a := NewClient(Options{BaseURL: srv.URL, Loading: loading})
	b := NewClient(Options{BaseURL: srv.URL, Loading: loading})

	assert.Same(t, a.Loading(), b.Loading())
	require.NoError(t, a.Get(context.Background(), "x", nil, nil))
	require.NoError(t, b.Get(context.Background(), "y", nil, nil))
	assert.False(t, loading.IsLoading())
}

func TestUserAgent(t *testing.T) {
	srv, rec := newTestServer(t, nil)
	client := newTestClient(srv, nil)

	require.NoError(t, client.Get(context.Background(), "users/me", nil, nil))
	assert.Equal(t, "StarfleetGamifier/1.0", rec.last(t).Header.Get("User-Agent"))
}
