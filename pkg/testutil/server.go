package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ArchiveServer serves fixed bodies by path and counts every request
type ArchiveServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string][]byte
	hits   map[string]int
}

// NewArchiveServer starts a server that answers 404 for unknown paths
func NewArchiveServer(t *testing.T) *ArchiveServer {
	t.Helper()

	s := &ArchiveServer{routes: map[string][]byte{}, hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *ArchiveServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	body, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(body)
}

// Handle registers body at path
func (s *ArchiveServer) Handle(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = body
}

// Hits returns the number of requests for path
func (s *ArchiveServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests across all paths
func (s *ArchiveServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}
