// Package cdn provides Server, the authoritative word store that bloom
// filters fall back to when they cannot rule a word out.
//
// Every CheckWord call is counted, so a Server doubles as a meter for how
// often an expensive exact lookup was needed. Server is not safe for
// concurrent use; callers sharing one must synchronize.
package cdn

import (
	"io"
	"unsafe"

	"github.com/jcalabro/lexis/internal/wordlist"
)

// Server is an exact set of words with a query counter. Create servers with
// New.
type Server struct {
	words map[string]struct{}
	usage uint64
}

// New returns an empty server.
func New() *Server {
	return &Server{words: make(map[string]struct{})}
}

// AddWord stores word. Adding a stored word is a no-op.
func (s *Server) AddWord(word string) {
	s.words[word] = struct{}{}
}

// CheckWord reports whether word is stored. Each call increments the usage
// count, whatever the answer.
func (s *Server) CheckWord(word string) bool {
	s.usage++
	_, ok := s.words[word]
	return ok
}

// UsageCount returns the number of CheckWord calls since creation.
func (s *Server) UsageCount() uint64 {
	return s.usage
}

// Len returns the number of stored words.
func (s *Server) Len() int {
	return len(s.words)
}

// LoadReader stores every word of a comma-separated word list.
func (s *Server) LoadReader(r io.Reader) error {
	return wordlist.Scan(r, func(word string) error {
		s.AddWord(word)
		return nil
	})
}

// LoadFile stores every word of the comma-separated word list at path.
func (s *Server) LoadFile(path string) error {
	return wordlist.ScanFile(path, func(word string) error {
		s.AddWord(word)
		return nil
	})
}

// bucketOverhead is charged once per word for the map slot that holds it.
const bucketOverhead = unsafe.Sizeof(uintptr(0))

// RAMUsage estimates the memory held by the stored words in kilobytes.
// The figure is for diagnostics only; map internals are not measured.
func (s *Server) RAMUsage() float64 {
	var total uintptr
	for word := range s.words {
		total += unsafe.Sizeof(word) + uintptr(len(word)) + bucketOverhead
	}
	return float64(total) / 1024.0
}
