//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// bulkRequest is one call the fake service received on its action endpoint
type bulkRequest struct {
	Action string
	Events []string
}

// fakeService stands in for the moderation service
type fakeService struct {
	mu       sync.Mutex
	valid    []string
	fail     bool
	requests []bulkRequest
	server   *httptest.Server
}

func newFakeService(t *testing.T, valid ...string) *fakeService {
	t.Helper()
	fs := &fakeService{valid: valid}

	mux := http.NewServeMux()
	mux.HandleFunc("/bulk_action_check", func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]string{"valid": fs.valid, "invalid": {}})
	})
	mux.HandleFunc("/bulk_action", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var ids []string
		_ = json.Unmarshal([]byte(r.PostForm.Get("events")), &ids)

		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.requests = append(fs.requests, bulkRequest{Action: r.PostForm.Get("action"), Events: ids})
		if fs.fail {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	fs.server = httptest.NewServer(mux)
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeService) URL() string {
	return fs.server.URL
}

func (fs *fakeService) setFail(fail bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.fail = fail
}

func (fs *fakeService) Requests() []bulkRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]bulkRequest(nil), fs.requests...)
}

func sampleEvents() []fixtureEvent {
	return []fixtureEvent{
		{ID: 101, Name: "Laser cutter intro", Status: "pending", Member: "ana", StartTime: "2026-11-03T18:00:00", EndTime: "2026-11-03T20:00:00"},
		{ID: 102, Name: "Soldering night", Status: "pending", Member: "bo", StartTime: "2026-11-03T19:00:00", EndTime: "2026-11-03T22:00:00"},
		{ID: 103, Name: "Sewing circle", Status: "onhold", Member: "cy", StartTime: "2026-12-01T17:00:00", EndTime: "2026-12-01T19:00:00"},
	}
}
