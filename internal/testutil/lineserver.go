package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// LineServer serves text pages over HTTP for source reader tests.
type LineServer struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string]string
	broken   map[string]string
	encoding map[string]string
	hits     map[string]int
}

// NewLineServer starts a server that answers every path in pages with its
// content. Unknown paths answer 404. The server is closed when the test ends.
func NewLineServer(t *testing.T, pages map[string]string) *LineServer {
	t.Helper()

	s := &LineServer{
		pages:    make(map[string]string),
		broken:   make(map[string]string),
		encoding: make(map[string]string),
		hits:     make(map[string]int),
	}
	for path, content := range pages {
		s.pages[path] = content
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// AddBroken registers a page that sends content and then drops the
// connection, so the reader fails mid-stream.
func (s *LineServer) AddBroken(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broken[path] = content
}

// AddEncoded registers a page served with the given Content-Encoding header.
func (s *LineServer) AddEncoded(path string, content []byte, encoding string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = string(content)
	s.encoding[path] = encoding
}

// URL returns the absolute URL of a path on the server.
func (s *LineServer) URL(path string) string {
	return s.Server.URL + path
}

// Hits returns how many times a path was requested.
func (s *LineServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *LineServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	content, ok := s.pages[r.URL.Path]
	broken, isBroken := s.broken[r.URL.Path]
	encoding := s.encoding[r.URL.Path]
	s.mu.Unlock()

	switch {
	case isBroken:
		// Announce more data than is sent, then abort the connection.
		w.Header().Set("Content-Length", strconv.Itoa(len(broken)+4096))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(broken))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		panic(http.ErrAbortHandler)
	case ok:
		if encoding != "" {
			w.Header().Set("Content-Encoding", encoding)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(content))
	default:
		http.NotFound(w, r)
	}
}
