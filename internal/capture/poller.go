package capture

import (
	"context"
	"time"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
)

// Poller drives a Machine from keyboard state snapshots when no event
// source is installed. Each Tick diffs the snapshot against the previous
// one and feeds the resulting transitions, modifiers first.
type Poller struct {
	sampler keyevent.Sampler
	machine *Machine
	prev    keyevent.Snapshot
}

// NewPoller ties sampler to machine.
func NewPoller(sampler keyevent.Sampler, machine *Machine) *Poller {
	return &Poller{sampler: sampler, machine: machine}
}

// Reset forgets the previous snapshot and the machine's modifier state, so
// keys already held count as pressed on the next Tick.
func (p *Poller) Reset() {
	p.prev = keyevent.Snapshot{}
	p.machine.resetModifiers()
}

// Tick samples once and applies the transitions.
func (p *Poller) Tick() {
	cur := p.sampler.Sample()
	for _, ev := range diff(p.prev, cur) {
		p.machine.Handle(ev)
	}
	p.prev = cur
}

// Run ticks every interval until ctx is done or the session ends.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	p.Reset()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.machine.Active() {
				return
			}
			p.Tick()
		}
	}
}

func diff(prev, cur keyevent.Snapshot) []keyevent.Event {
	var out []keyevent.Event
	for _, m := range []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModAlt, hotkey.ModShift, hotkey.ModMeta} {
		was, is := prev.Mods.Has(m), cur.Mods.Has(m)
		if was != is {
			out = append(out, keyevent.Event{Modifier: m, Down: is})
		}
	}

	held := make(map[hotkey.Key]bool, len(prev.Keys))
	for _, k := range prev.Keys {
		held[k] = true
	}
	now := make(map[hotkey.Key]bool, len(cur.Keys))
	for _, k := range cur.Keys {
		now[k] = true
		if !held[k] {
			out = append(out, keyevent.Event{Key: k, Down: true})
		}
	}
	for _, k := range prev.Keys {
		if !now[k] {
			out = append(out, keyevent.Event{Key: k})
		}
	}
	return out
}
