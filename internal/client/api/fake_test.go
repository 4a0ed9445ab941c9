package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
)

// fakeBackend answers DoJSON from a routing function and records every call.
type fakeBackend struct {
	mu    sync.Mutex
	calls []transport.Request
	route func(req transport.Request) (any, error)
}

func (f *fakeBackend) DoJSON(_ context.Context, req transport.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	res, err := f.route(req)
	if err != nil {
		return err
	}
	if out == nil || res == nil {
		return nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeBackend) last(method string) transport.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method {
			return f.calls[i]
		}
	}
	return transport.Request{}
}

func gets(f *fakeBackend, path string) int { return f.count(http.MethodGet, path) }

var testNow = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

func utcViewer() Viewer {
	return Viewer{Location: time.UTC, Now: func() time.Time { return testNow }}
}
