package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
)

var (
	ErrInvalidTransition = errors.New("invalid dashboard status transition")
	ErrTornDown          = errors.New("dashboard has been torn down")
	ErrNotFound          = errors.New("dashboard not found")
)

// Fetcher produces the snapshot a dashboard displays.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*cowin.Snapshot, error)
}

// Transition describes one status change of a dashboard instance.
type Transition struct {
	ID      string
	From    Status
	To      Status
	At      time.Time
	Elapsed time.Duration // time spent loading, zero until the cycle resolves
}

// Observer is notified after every status change, in order.
type Observer interface {
	OnTransition(t Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t Transition)

func (f ObserverFunc) OnTransition(t Transition) { f(t) }

// State is a read-only copy of a dashboard. Snapshot is nil unless Status is Success.
type State struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Snapshot  *cowin.Snapshot `json:"snapshot,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Dashboard is one mounted dashboard. It runs exactly one fetch cycle.
type Dashboard struct {
	id        string
	fetcher   Fetcher
	observers []Observer
	now       func() time.Time

	mu        sync.RWMutex
	status    Status
	snapshot  *cowin.Snapshot
	createdAt time.Time
	updatedAt time.Time
	loadingAt time.Time
	tornDown  bool

	ctx       context.Context
	cancel    context.CancelFunc
	mountOnce sync.Once
	done      chan struct{}
}

// New creates a dashboard in the Initial state. Tearing it down, or cancelling
// parent, cancels its fetch.
func New(parent context.Context, fetcher Fetcher, observers ...Observer) *Dashboard {
	ctx, cancel := context.WithCancel(parent)
	now := time.Now()
	return &Dashboard{
		id:        uuid.NewString(),
		fetcher:   fetcher,
		observers: observers,
		now:       time.Now,
		status:    StatusInitial,
		createdAt: now,
		updatedAt: now,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

func (d *Dashboard) ID() string {
	return d.id
}

// Mount enters Loading and starts the fetch. Only the first call has an effect.
func (d *Dashboard) Mount() {
	d.mountOnce.Do(func() {
		if err := d.transition(StatusLoading, nil); err != nil {
			log.Warnf("[Dashboard] %s could not start loading: %v", d.id, err)
			close(d.done)
			return
		}
		go d.run()
	})
}

func (d *Dashboard) run() {
	defer close(d.done)

	snapshot, err := d.fetcher.FetchSnapshot(d.ctx)
	if d.ctx.Err() != nil {
		log.Debugf("[Dashboard] %s torn down before fetch resolved, discarding result", d.id)
		return
	}

	if err != nil {
		log.Warnf("[Dashboard] %s fetch failed: %v", d.id, err)
		d.resolve(StatusFailure, nil)
		return
	}
	d.resolve(StatusSuccess, snapshot)
}

func (d *Dashboard) resolve(to Status, snapshot *cowin.Snapshot) {
	if err := d.transition(to, snapshot); err != nil && !errors.Is(err, ErrTornDown) {
		log.Errorf("[Dashboard] %s: %v", d.id, err)
	}
}

// transition is the only place dashboard state changes.
func (d *Dashboard) transition(to Status, snapshot *cowin.Snapshot) error {
	d.mu.Lock()
	if d.tornDown {
		d.mu.Unlock()
		return ErrTornDown
	}
	from := d.status
	if !canTransition(from, to) {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	at := d.now()
	d.status = to
	d.updatedAt = at
	if to == StatusSuccess {
		d.snapshot = snapshot
	}

	t := Transition{ID: d.id, From: from, To: to, At: at}
	if to == StatusLoading {
		d.loadingAt = at
	} else {
		t.Elapsed = at.Sub(d.loadingAt)
	}
	d.mu.Unlock()

	for _, o := range d.observers {
		o.OnTransition(t)
	}
	return nil
}

// Teardown cancels the pending fetch. Any result arriving afterwards is dropped.
func (d *Dashboard) Teardown() {
	d.mu.Lock()
	d.tornDown = true
	d.mu.Unlock()
	d.cancel()
}

func (d *Dashboard) IsTornDown() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tornDown
}

// State returns a copy of the current state.
func (d *Dashboard) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := State{
		ID:        d.id,
		Status:    d.status,
		CreatedAt: d.createdAt,
		UpdatedAt: d.updatedAt,
	}
	if d.status == StatusSuccess {
		s.Snapshot = d.snapshot
	}
	return s
}

// Wait blocks until the fetch cycle resolves, the dashboard is torn down or ctx ends.
func (d *Dashboard) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		if d.IsTornDown() {
			return ErrTornDown
		}
		return nil
	case <-d.ctx.Done():
		return ErrTornDown
	case <-ctx.Done():
		return ctx.Err()
	}
}
