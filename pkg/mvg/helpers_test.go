package mvg

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeAPI struct {
	mu       sync.Mutex
	requests []*http.Request
	server   *httptest.Server
}

// newFakeAPI serves the given handlers keyed by request path. FIB endpoints live
// under /fib and ZDM endpoints under /zdm.
func newFakeAPI(t *testing.T, handlers map[string]http.HandlerFunc) (*fakeAPI, *Client) {
	t.Helper()

	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, r)
		api.mu.Unlock()

		handler, exists := handlers[r.URL.Path]
		if !exists {
			http.NotFound(w, r)
			return
		}

		handler(w, r)
	}))
	t.Cleanup(api.server.Close)

	client := NewClient()
	client.FIBURL = api.server.URL + "/fib"
	client.ZDMURL = api.server.URL + "/zdm"

	return api, client
}

func (a *fakeAPI) requestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests)
}

func (a *fakeAPI) lastRequest() *http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.requests) == 0 {
		return nil
	}

	return a.requests[len(a.requests)-1]
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(body))
	}
}

func statusResponse(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}
