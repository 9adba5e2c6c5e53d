package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncObserverDoesNotBlockTransitions(t *testing.T) {
	release := make(chan struct{})
	rec := &recorder{}
	slow := ObserverFunc(func(tr Transition) {
		<-release
		rec.OnTransition(tr)
	})
	async := NewAsyncObserver(slow, 4)

	done := make(chan struct{})
	go func() {
		async.OnTransition(Transition{ID: "a", From: StatusInitial, To: StatusLoading})
		async.OnTransition(Transition{ID: "a", From: StatusLoading, To: StatusSuccess})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnTransition blocked on a slow observer")
	}

	close(release)
	async.Close()

	require.Len(t, rec.transitions, 2)
	assert.Equal(t, StatusLoading, rec.transitions[0].To)
	assert.Equal(t, StatusSuccess, rec.transitions[1].To)
}

func TestAsyncObserverDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	rec := &recorder{}
	async := NewAsyncObserver(ObserverFunc(func(tr Transition) {
		<-release
		rec.OnTransition(tr)
	}), 1)

	// the worker holds at most one transition, the queue one more
	for i := 0; i < 10; i++ {
		async.OnTransition(Transition{ID: "a", To: StatusLoading})
	}
	close(release)
	async.Close()

	assert.LessOrEqual(t, len(rec.transitions), 2)
	assert.GreaterOrEqual(t, len(rec.transitions), 1)
}

func TestAsyncObserverIgnoresTransitionsAfterClose(t *testing.T) {
	rec := &recorder{}
	async := NewAsyncObserver(rec, 0)
	async.Close()
	async.Close()

	assert.NotPanics(t, func() {
		async.OnTransition(Transition{ID: "a", To: StatusLoading})
	})
	assert.Empty(t, rec.transitions)
}

func TestManagerMountDoesNotWaitOnSlowObserver(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := NewAsyncObserver(ObserverFunc(func(Transition) { <-release }), 8)

	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	defer close(fetcher.release)
	m := NewManager(fetcher, ManagerOptions{Observers: []Observer{slow}})

	mounted := make(chan *Dashboard)
	go func() { mounted <- m.Mount() }()

	select {
	case d := <-mounted:
		assert.Equal(t, StatusLoading, d.State().Status)
	case <-time.After(time.Second):
		t.Fatal("Mount blocked on a slow observer")
	}
}
