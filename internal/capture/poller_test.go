package capture

import (
	"context"
	"testing"
	"time"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
)

type scriptedSampler struct {
	snaps []keyevent.Snapshot
	i     int
}

func (s *scriptedSampler) Sample() keyevent.Snapshot {
	if s.i >= len(s.snaps) {
		return s.snaps[len(s.snaps)-1]
	}
	snap := s.snaps[s.i]
	s.i++
	return snap
}

func snap(mods hotkey.ModifierSet, keys ...hotkey.Key) keyevent.Snapshot {
	return keyevent.Snapshot{Mods: mods, Keys: keys}
}

func TestPollerTick(t *testing.T) {
	ctrl := hotkey.ModifierSet(hotkey.ModCtrl)
	alt := hotkey.ModifierSet(hotkey.ModAlt)

	tests := []struct {
		name  string
		snaps []keyevent.Snapshot
		want  *Outcome
	}{
		{"ctrl then q", []keyevent.Snapshot{snap(ctrl), snap(ctrl, hotkey.KeyQ)}, &Outcome{Kind: Captured, Mnemonic: "Ctrl+Q"}},
		{"chord in one sample", []keyevent.Snapshot{snap(ctrl.With(hotkey.ModShift), hotkey.KeyT)}, &Outcome{Kind: Captured, Mnemonic: "Ctrl+Shift+T"}},
		{"bare key", []keyevent.Snapshot{snap(0, hotkey.KeyQ), snap(0)}, nil},
		{"escape", []keyevent.Snapshot{snap(ctrl), snap(ctrl, hotkey.KeyEscape)}, &Outcome{Kind: Cancelled}},
		{"alt+tab", []keyevent.Snapshot{snap(alt), snap(alt, hotkey.KeyTab)}, nil},
		{"held key pressed again", []keyevent.Snapshot{snap(0, hotkey.KeyQ), snap(ctrl, hotkey.KeyQ), snap(ctrl), snap(ctrl, hotkey.KeyQ)}, &Outcome{Kind: Captured, Mnemonic: "Ctrl+Q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Start()
			p := NewPoller(&scriptedSampler{snaps: tt.snaps}, m)
			for range tt.snaps {
				p.Tick()
			}

			got, ok := m.Poll()
			switch {
			case tt.want == nil && ok:
				t.Errorf("Poll() = %+v, want none", got)
			case tt.want != nil && (!ok || got != *tt.want):
				t.Errorf("Poll() = %+v, %v, want %+v", got, ok, *tt.want)
			}
		})
	}
}

func TestPollerRunStopsWhenSessionEnds(t *testing.T) {
	m := New()
	m.Start()
	ctrl := hotkey.ModifierSet(hotkey.ModCtrl)
	p := NewPoller(&scriptedSampler{snaps: []keyevent.Snapshot{snap(ctrl), snap(ctrl, hotkey.KeyK)}}, m)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background(), time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the session finished")
	}
	if out, ok := m.Poll(); !ok || out.Mnemonic != "Ctrl+K" {
		t.Errorf("Poll() = %+v, %v, want Ctrl+K", out, ok)
	}
}

func TestPollerRunHonoursContext(t *testing.T) {
	m := New()
	m.Start()
	p := NewPoller(&scriptedSampler{snaps: []keyevent.Snapshot{snap(0)}}, m)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored context cancellation")
	}
}

func TestPushAndPollAgreeOnHeldModifier(t *testing.T) {
	ctrl := hotkey.ModifierSet(hotkey.ModCtrl)
	want := Outcome{Kind: Captured, Mnemonic: "Ctrl+Q"}

	push := New()
	push.Handle(keyevent.Event{Modifier: hotkey.ModCtrl, Down: true})
	push.Start()
	push.Handle(keyevent.Event{Key: hotkey.KeyQ, Down: true})

	poll := New()
	poll.Start()
	p := NewPoller(&scriptedSampler{snaps: []keyevent.Snapshot{snap(ctrl), snap(ctrl, hotkey.KeyQ)}}, poll)
	p.Reset()
	p.Tick()
	p.Tick()

	for name, m := range map[string]*Machine{"push": push, "poll": poll} {
		if got, ok := m.Poll(); !ok || got != want {
			t.Errorf("%s: Poll() = %+v, %v, want %+v", name, got, ok, want)
		}
	}
}

func TestPollerResetDropsStaleModifiers(t *testing.T) {
	m := New()
	m.Handle(keyevent.Event{Modifier: hotkey.ModShift, Down: true})
	m.Start()

	// The release was never observed; the sampler shows nothing held.
	p := NewPoller(&scriptedSampler{snaps: []keyevent.Snapshot{snap(0, hotkey.KeyQ)}}, m)
	p.Reset()
	p.Tick()

	if out, ok := m.Poll(); ok {
		t.Errorf("Poll() = %+v, want bare key ignored", out)
	}
	if !m.Active() {
		t.Error("Active() = false, want session still recording")
	}
}
