package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	DefaultInstanceTTL   = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Gauge receives the number of live dashboards. prometheus.Gauge satisfies it.
type Gauge interface {
	Set(float64)
}

// ManagerOptions configures a Manager. Zero values fall back to the defaults.
type ManagerOptions struct {
	InstanceTTL   time.Duration
	SweepInterval time.Duration
	Observers     []Observer
	Active        Gauge
}

// Manager owns the live dashboard instances and expires abandoned ones.
type Manager struct {
	fetcher       Fetcher
	ttl           time.Duration
	sweepInterval time.Duration
	observers     []Observer
	active        Gauge

	mu        sync.RWMutex
	instances map[string]*Dashboard

	runMu   sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewManager(fetcher Fetcher, opts ManagerOptions) *Manager {
	if opts.InstanceTTL <= 0 {
		opts.InstanceTTL = DefaultInstanceTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	return &Manager{
		fetcher:       fetcher,
		ttl:           opts.InstanceTTL,
		sweepInterval: opts.SweepInterval,
		observers:     opts.Observers,
		active:        opts.Active,
		instances:     make(map[string]*Dashboard),
	}
}

// Mount creates a dashboard, registers it and starts its fetch.
func (m *Manager) Mount() *Dashboard {
	d := New(context.Background(), m.fetcher, m.observers...)

	m.mu.Lock()
	m.instances[d.ID()] = d
	count := len(m.instances)
	m.mu.Unlock()

	m.reportActive(count)
	d.Mount()
	return d
}

func (m *Manager) Get(id string) (*Dashboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.instances[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Teardown tears the dashboard down and forgets it.
func (m *Manager) Teardown(id string) error {
	m.mu.Lock()
	d, ok := m.instances[id]
	if ok {
		delete(m.instances, id)
	}
	count := len(m.instances)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	d.Teardown()
	m.reportActive(count)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}

// Sweep tears down every dashboard mounted longer than the TTL before now.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var expired []*Dashboard
	for id, d := range m.instances {
		if now.Sub(d.State().CreatedAt) > m.ttl {
			expired = append(expired, d)
			delete(m.instances, id)
		}
	}
	count := len(m.instances)
	m.mu.Unlock()

	for _, d := range expired {
		d.Teardown()
	}
	if len(expired) > 0 {
		m.reportActive(count)
	}
	return len(expired)
}

// Start runs the expiry sweeper.
func (m *Manager) Start() {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.running {
		return
	}

	m.stopCh = make(chan struct{})
	m.running = true
	log.Infof("[Dashboard Manager] Starting sweeper (ttl=%s, interval=%s)", m.ttl, m.sweepInterval)

	m.wg.Add(1)
	go m.sweeper()
}

// Stop halts the sweeper and tears down all remaining dashboards.
func (m *Manager) Stop() {
	m.runMu.Lock()
	if m.running {
		close(m.stopCh)
		m.running = false
	}
	m.runMu.Unlock()
	m.wg.Wait()

	m.mu.Lock()
	remaining := make([]*Dashboard, 0, len(m.instances))
	for id, d := range m.instances {
		remaining = append(remaining, d)
		delete(m.instances, id)
	}
	m.mu.Unlock()

	for _, d := range remaining {
		d.Teardown()
	}
	m.reportActive(0)

	// flush queued transitions of asynchronous observers
	for _, o := range m.observers {
		if closer, ok := o.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	log.Infof("[Dashboard Manager] Stopped, tore down %d dashboards", len(remaining))
}

func (m *Manager) sweeper() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case now := <-ticker.C:
			if n := m.Sweep(now); n > 0 {
				log.Infof("[Dashboard Manager] Expired %d dashboards", n)
			}
		}
	}
}

func (m *Manager) reportActive(count int) {
	if m.active != nil {
		m.active.Set(float64(count))
	}
}
