package session

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is a handle on the authentication change feed. Values are delivered
// in publish order; a slow reader never blocks the publisher.
type Subscription struct {
	id     uuid.UUID
	out    chan bool
	notify chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	pending []bool
	closed  bool

	release func(uuid.UUID)
	once    sync.Once
}

func newSubscription(release func(uuid.UUID)) *Subscription {
	s := &Subscription{
		id:      uuid.New(),
		out:     make(chan bool),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		release: release,
	}
	go s.forward()
	return s
}

func (s *Subscription) C() <-chan bool {
	return s.out
}

// Close releases the handle. The channel returned by C is closed and never
// delivers again.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.pending = nil
		s.mu.Unlock()

		close(s.done)
		s.release(s.id)
	})
}

func (s *Subscription) push(v bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription) forward() {
	defer close(s.out)

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			select {
			case <-s.notify:
				continue
			case <-s.done:
				return
			}
		}
		v := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		select {
		case s.out <- v:
		case <-s.done:
			return
		}
	}
}
