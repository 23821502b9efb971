// Package ids provides the id generation capability injected into every
// component that creates entities.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new unique id on each call.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

// UUID returns a Generator producing random RFC 4122 version 4 ids.
func UUID() Generator {
	return GeneratorFunc(uuid.NewString)
}

// SequenceGenerator produces predictable ids "<prefix>-1", "<prefix>-2", ...
// It is safe for concurrent use.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// Sequence returns a SequenceGenerator starting at 1.
func Sequence(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

func (s *SequenceGenerator) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}
