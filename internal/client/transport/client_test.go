package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/healthcomp/internal/client/credentials"
	"github.com/dmitrijs2005/healthcomp/internal/client/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []telemetry.Event
}

func (r *recorder) Report(_ context.Context, evt telemetry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// backend is a fake API that accepts only the bearer in valid.
type backend struct {
	mu           sync.Mutex
	valid        string
	refreshCalls int32
	dataCalls    int32
	refreshReply func(w http.ResponseWriter, body refreshRequest)
	dataStatus   int
	lastAuth     []string
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.refreshCalls, 1)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.refreshReply(w, body)
	})
	mux.HandleFunc("/api/workout/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.dataCalls, 1)
		b.mu.Lock()
		b.lastAuth = append(b.lastAuth, r.Header.Get("Authorization"))
		valid := b.valid
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if b.dataStatus != 0 {
			w.WriteHeader(b.dataStatus)
			_, _ = w.Write([]byte(`{"detail":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})
	return mux
}

func newTestClient(t *testing.T, srv *httptest.Server, store credentials.Store, rep telemetry.Reporter) *Client {
	t.Helper()
	c, err := New(srv.URL+"/api/", store, WithHTTPClient(srv.Client()), WithReporter(rep))
	require.NoError(t, err)
	return c
}

func workoutsReq() Request {
	return Request{Method: http.MethodGet, Path: "workout/", Endpoint: "getWorkouts"}
}

func TestDo_ValidTokenSucceedsWithoutRefresh(t *testing.T) {
	b := &backend{valid: "A1"}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	rep := &recorder{}
	c := newTestClient(t, srv, store, rep)

	resp, err := c.Do(context.Background(), workoutsReq())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[{"id":1}]`, string(resp.Body))
	assert.EqualValues(t, 0, b.refreshCalls)
	assert.Equal(t, 0, rep.count())
}

func TestDo_RefreshesOnceAndRetries(t *testing.T) {
	b := &backend{valid: "A2"}
	b.refreshReply = func(w http.ResponseWriter, body refreshRequest) {
		if body.Refresh != "R1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access":"A2"}`))
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	rep := &recorder{}
	c := newTestClient(t, srv, store, rep)

	var out []map[string]any
	require.NoError(t, c.DoJSON(context.Background(), workoutsReq(), &out))
	require.Len(t, out, 1)

	assert.EqualValues(t, 1, b.refreshCalls)
	assert.EqualValues(t, 2, b.dataCalls)
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, b.lastAuth)

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, credentials.Pair{Access: "A2", Refresh: "R1"}, pair)
	assert.Equal(t, 0, rep.count())
}

func TestDo_RotatedRefreshTokenIsStored(t *testing.T) {
	b := &backend{valid: "A2"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		_, _ = w.Write([]byte(`{"access":"A2","refresh":"R2"}`))
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	c := newTestClient(t, srv, store, telemetry.NopReporter{})

	_, err := c.Do(context.Background(), workoutsReq())
	require.NoError(t, err)

	pair, _ := store.Get(context.Background())
	assert.Equal(t, credentials.Pair{Access: "A2", Refresh: "R2"}, pair)
}

func TestDo_NoRefreshTokenSkipsRefresh(t *testing.T) {
	b := &backend{valid: "other"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		t.Error("refresh must not be called")
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1"})
	rep := &recorder{}
	c := newTestClient(t, srv, store, rep)

	_, err := c.Do(context.Background(), workoutsReq())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonNoRefreshToken, ae.Reason)
	assert.Equal(t, "/login?redirect=%2Fworkouts%2Fnew", ae.RedirectURL("/workouts/new"))

	assert.EqualValues(t, 0, b.refreshCalls)
	assert.EqualValues(t, 1, b.dataCalls)
	assert.Equal(t, 0, rep.count())
}

func TestDo_RejectedRefreshClearsCredentials(t *testing.T) {
	b := &backend{valid: "never"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	rep := &recorder{}
	c := newTestClient(t, srv, store, rep)

	_, err := c.Do(context.Background(), workoutsReq())
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonRefreshRejected, ae.Reason)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, ClassUnauthenticated, Classify(err))

	assert.EqualValues(t, 1, b.refreshCalls)
	assert.EqualValues(t, 1, b.dataCalls, "no retry after a failed refresh")

	pair, _ := store.Get(context.Background())
	assert.True(t, pair.Empty())
	assert.Equal(t, 0, rep.count())
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo_RefreshNetworkFaultKeepsCredentials(t *testing.T) {
	b := &backend{valid: "never"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		t.Error("refresh must not reach the backend")
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	reset := errors.New("connection reset by peer")
	doer := doerFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/api/token/refresh/" {
			return nil, reset
		}
		return srv.Client().Do(r)
	})

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	rep := &recorder{}
	c, err := New(srv.URL+"/api/", store, WithHTTPClient(doer), WithReporter(rep))
	require.NoError(t, err)

	_, err = c.Do(context.Background(), workoutsReq())
	require.ErrorIs(t, err, reset)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, ClassServerOrNetwork, Classify(err))
	assert.EqualValues(t, 1, b.dataCalls)
	assert.Equal(t, 1, rep.count())

	pair, _ := store.Get(context.Background())
	assert.Equal(t, credentials.Pair{Access: "A1", Refresh: "R1"}, pair)
}

func TestDo_RefreshServerErrorKeepsCredentials(t *testing.T) {
	b := &backend{valid: "never"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		w.WriteHeader(http.StatusBadGateway)
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	c := newTestClient(t, srv, store, telemetry.NopReporter{})

	_, err := c.Do(context.Background(), workoutsReq())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, ClassServerOrNetwork, Classify(err))
	assert.EqualValues(t, 1, b.refreshCalls)
	assert.EqualValues(t, 1, b.dataCalls)

	pair, _ := store.Get(context.Background())
	assert.Equal(t, credentials.Pair{Access: "A1", Refresh: "R1"}, pair)
}

func TestDo_RefreshWithoutAccessTokenIsRejected(t *testing.T) {
	b := &backend{valid: "A2"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		_, _ = w.Write([]byte(`{}`))
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	c := newTestClient(t, srv, store, telemetry.NopReporter{})

	_, err := c.Do(context.Background(), workoutsReq())
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.EqualValues(t, 1, b.dataCalls)
	pair, _ := store.Get(context.Background())
	assert.True(t, pair.Empty())
}

func TestDo_SecondUnauthorizedIsFinal(t *testing.T) {
	b := &backend{valid: "nobody-has-this"}
	b.refreshReply = func(w http.ResponseWriter, _ refreshRequest) {
		_, _ = w.Write([]byte(`{"access":"A2"}`))
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"})
	rep := &recorder{}
	c := newTestClient(t, srv, store, rep)

	_, err := c.Do(context.Background(), workoutsReq())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, ClassTransientExpected, Classify(err))

	assert.EqualValues(t, 1, b.refreshCalls)
	assert.EqualValues(t, 2, b.dataCalls)
	assert.Equal(t, 0, rep.count())
}

func TestDo_StatusReporting(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		reported int
		class    Class
	}{
		{"not found", http.StatusNotFound, 0, ClassTransientExpected},
		{"rate limited", http.StatusTooManyRequests, 0, ClassTransientExpected},
		{"server error", http.StatusInternalServerError, 1, ClassServerOrNetwork},
		{"bad request", http.StatusBadRequest, 1, ClassServerOrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &backend{valid: "A1", dataStatus: tt.status}
			srv := httptest.NewServer(b.handler(t))
			defer srv.Close()

			rep := &recorder{}
			c := newTestClient(t, srv, credentials.NewMemoryStore(credentials.Pair{Access: "A1", Refresh: "R1"}), rep)

			req := workoutsReq()
			req.Query = url.Values{"page": {"2"}}
			_, err := c.Do(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsStatus(err, tt.status))
			assert.Equal(t, tt.class, Classify(err))
			require.Equal(t, tt.reported, rep.count())

			if tt.reported > 0 {
				evt := rep.events[0]
				assert.Equal(t, tt.status, evt.Status)
				assert.Equal(t, "getWorkouts", evt.Endpoint)
				assert.Equal(t, "2", evt.Query.Get("page"))
				assert.JSONEq(t, `{"detail":"boom"}`, string(evt.Body))
			}
		})
	}
}

func TestDo_NetworkErrorReportedOnce(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rep := &recorder{}
	c, err := New(base+"/api/", credentials.NewMemoryStore(credentials.Pair{}), WithReporter(rep))
	require.NoError(t, err)

	_, err = c.Do(context.Background(), workoutsReq())
	require.Error(t, err)
	assert.Equal(t, ClassServerOrNetwork, Classify(err))
	require.Equal(t, 1, rep.count())
	assert.Equal(t, 0, rep.events[0].Status)
}

func TestDo_OmitsBearerWithoutToken(t *testing.T) {
	var auth, reqID, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(RequestIDHeader)
		query = r.URL.RawQuery
		assert.Equal(t, "/api/competition/3/", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/api", credentials.NewMemoryStore(credentials.Pair{}),
		WithHTTPClient(srv.Client()), WithRequestID(func() string { return "req-1" }))
	require.NoError(t, err)

	_, err = c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/competition/3/",
		Query:  url.Values{"a": {"1"}},
	})
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "a=1", query)
}

func TestObtainPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token/", r.URL.Path)
		var body obtainRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Email != "a@b.c" || body.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access":"A","refresh":"R"}`))
	}))
	defer srv.Close()

	store := credentials.NewMemoryStore(credentials.Pair{})
	c, err := New(srv.URL+"/api/", store, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	pair, err := c.ObtainPair(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, credentials.Pair{Access: "A", Refresh: "R"}, pair)

	_, err = c.ObtainPair(context.Background(), "a@b.c", "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	held, _ := store.Get(context.Background())
	assert.True(t, held.Empty())
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	_, err := New("/api/", credentials.NewMemoryStore(credentials.Pair{}))
	require.Error(t, err)
}
