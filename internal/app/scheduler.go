package app

import (
	"sync"

	"github.com/dshills/storefront/internal/renderer/backend"
)

// Scheduler separates background work from the single-threaded core.
type Scheduler interface {
	// Go runs fn off the event loop.
	Go(fn func())

	// Post runs fn on the event loop. It is safe to call from any goroutine.
	Post(fn func())
}

// loopScheduler posts work to the event loop through backend interrupts.
type loopScheduler struct {
	backend backend.Backend
	wg      sync.WaitGroup
	onError func(error)
}

func newLoopScheduler(b backend.Backend, onError func(error)) *loopScheduler {
	return &loopScheduler{backend: b, onError: onError}
}

func (s *loopScheduler) Go(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (s *loopScheduler) Post(fn func()) {
	if err := s.backend.PostInterrupt(fn); err != nil && s.onError != nil {
		s.onError(err)
	}
}

// Wait blocks until every goroutine started with Go has returned.
func (s *loopScheduler) Wait() {
	s.wg.Wait()
}

// runPosted executes a function delivered by an interrupt event.
func runPosted(ev backend.Event) bool {
	fn, ok := ev.Data.(func())
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

// InlineScheduler runs everything immediately on the calling goroutine.
type InlineScheduler struct{}

// Go implements Scheduler.
func (InlineScheduler) Go(fn func()) { fn() }

// Post implements Scheduler.
func (InlineScheduler) Post(fn func()) { fn() }

// QueueScheduler holds background work and posted functions until Drain.
type QueueScheduler struct {
	mu    sync.Mutex
	queue []func()
}

// Go implements Scheduler.
func (q *QueueScheduler) Go(fn func()) { q.push(fn) }

// Post implements Scheduler.
func (q *QueueScheduler) Post(fn func()) { q.push(fn) }

func (q *QueueScheduler) push(fn func()) {
	q.mu.Lock()
	q.queue = append(q.queue, fn)
	q.mu.Unlock()
}

// Pending returns the number of queued functions.
func (q *QueueScheduler) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// Drain runs queued functions, including ones queued while draining,
// until the queue is empty. It returns how many ran.
func (q *QueueScheduler) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.queue) == 0 {
			q.mu.Unlock()
			return n
		}
		fn := q.queue[0]
		q.queue = q.queue[1:]
		q.mu.Unlock()

		fn()
		n++
	}
}
