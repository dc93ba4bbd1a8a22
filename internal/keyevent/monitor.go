package keyevent

import (
	"sync"
	"sync/atomic"

	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// eventBuffer bounds the queue between the OS callback and the dispatcher.
const eventBuffer = 256

// Monitor owns a Source, its pump goroutine and the dispatcher that feeds
// listeners. It reports at most one fault for its lifetime.
type Monitor struct {
	source Source
	log    *zap.Logger

	events  chan Event
	dropped atomic.Uint64

	mu          sync.Mutex
	listeners   []func(Event)
	running     bool
	dispatching bool

	faulted atomic.Bool
	faults  chan string
}

// NewMonitor wraps src. Nothing is installed until Start.
func NewMonitor(src Source) *Monitor {
	return &Monitor{
		source: src,
		log:    logging.For("keyevent"),
		events: make(chan Event, eventBuffer),
		faults: make(chan string, 1),
	}
}

// Subscribe adds a listener. Listeners run on the dispatcher goroutine, in
// subscription order, for every event in OS order.
func (m *Monitor) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners[:len(m.listeners):len(m.listeners)], fn)
}

// Start launches the pump. It is a no-op while a pump is running. After a
// failed installation Start may be called again to retry.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	if !m.dispatching {
		m.dispatching = true
		go m.dispatch()
	}
	m.mu.Unlock()

	m.log.Info("starting key event source", zap.String("source", m.source.Name()))
	go m.pump()
}

func (m *Monitor) pump() {
	err := m.source.Run(m.forward)

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()

	if err != nil {
		m.reportFault(err.Error())
		return
	}
	m.log.Warn("key event pump exited", zap.String("source", m.source.Name()))
}

// forward is called from the OS callback. It only touches the bounded
// channel and a counter.
func (m *Monitor) forward(ev Event) {
	select {
	case m.events <- ev:
	default:
		m.dropped.Add(1)
	}
}

func (m *Monitor) dispatch() {
	for ev := range m.events {
		if ce := m.log.Check(zap.DebugLevel, "key event"); ce != nil {
			ce.Write(zap.String("key", ev.DisplayName()), zap.Bool("down", ev.Down),
				zap.Uint32("code", ev.Code))
		}

		m.mu.Lock()
		listeners := m.listeners
		m.mu.Unlock()
		for _, fn := range listeners {
			m.deliver(fn, ev)
		}
	}
}

func (m *Monitor) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("recovered from panic in key event listener", zap.Any("panic", r))
		}
	}()
	fn(ev)
}

func (m *Monitor) reportFault(msg string) {
	if !m.faulted.CompareAndSwap(false, true) {
		m.log.Debug("repeated monitor fault suppressed", zap.String("fault", msg))
		return
	}
	m.log.Error("key event source failed", zap.String("source", m.source.Name()), zap.String("fault", msg))
	m.faults <- msg
}

// Faults yields at most one diagnostic for the monitor's lifetime.
func (m *Monitor) Faults() <-chan string {
	return m.faults
}

// Faulted reports whether installation has failed.
func (m *Monitor) Faulted() bool {
	return m.faulted.Load()
}

// Dropped returns how many events were discarded because the dispatcher
// fell behind.
func (m *Monitor) Dropped() uint64 {
	return m.dropped.Load()
}
