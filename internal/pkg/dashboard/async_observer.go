package dashboard

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// DefaultObserverBuffer is the queue length of an AsyncObserver.
const DefaultObserverBuffer = 256

// AsyncObserver hands transitions to a slow observer (redis) on a single
// worker goroutine, so transitions never wait on I/O. Order is kept. When the
// queue is full the transition is dropped for that observer.
type AsyncObserver struct {
	inner Observer
	queue chan Transition

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncObserver(inner Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = DefaultObserverBuffer
	}
	a := &AsyncObserver{
		inner: inner,
		queue: make(chan Transition, buffer),
	}
	a.wg.Add(1)
	go a.worker()
	return a
}

// OnTransition implements Observer. It never blocks.
func (a *AsyncObserver) OnTransition(t Transition) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return
	}
	select {
	case a.queue <- t:
	default:
		log.Warnf("[Dashboard] Observer queue full, dropping %s -> %s of %s", t.From, t.To, t.ID)
	}
}

// Close stops accepting transitions and waits until the queued ones are delivered.
func (a *AsyncObserver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *AsyncObserver) worker() {
	defer a.wg.Done()
	for t := range a.queue {
		a.inner.OnTransition(t)
	}
}
