package capture

import (
	"testing"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
)

func mod(m hotkey.Modifier, down bool) keyevent.Event {
	return keyevent.Event{Modifier: m, Down: down}
}

func key(k hotkey.Key, down bool) keyevent.Event {
	return keyevent.Event{Key: k, Down: down}
}

func TestMachine(t *testing.T) {
	tests := []struct {
		name       string
		before     []keyevent.Event // delivered while idle
		events     []keyevent.Event
		want       *Outcome
		wantActive bool
	}{
		{
			name:   "ctrl+q",
			events: []keyevent.Event{mod(hotkey.ModCtrl, true), key(hotkey.KeyQ, true)},
			want:   &Outcome{Kind: Captured, Mnemonic: "Ctrl+Q"},
		},
		{
			name:       "bare key ignored",
			events:     []keyevent.Event{key(hotkey.KeyQ, true), key(hotkey.KeyQ, false)},
			wantActive: true,
		},
		{
			name:   "escape cancels mid-hold",
			events: []keyevent.Event{mod(hotkey.ModCtrl, true), mod(hotkey.ModShift, true), key(hotkey.KeyEscape, true)},
			want:   &Outcome{Kind: Cancelled},
		},
		{
			name:       "tab excluded",
			events:     []keyevent.Event{mod(hotkey.ModAlt, true), key(hotkey.KeyTab, true)},
			wantActive: true,
		},
		{
			name:       "released modifier does not count",
			events:     []keyevent.Event{mod(hotkey.ModCtrl, true), mod(hotkey.ModCtrl, false), key(hotkey.KeyQ, true)},
			wantActive: true,
		},
		{
			name:       "modifiers never finalize",
			events:     []keyevent.Event{mod(hotkey.ModCtrl, true), mod(hotkey.ModAlt, true)},
			wantActive: true,
		},
		{
			name: "canonical modifier order",
			events: []keyevent.Event{
				mod(hotkey.ModMeta, true), mod(hotkey.ModShift, true), mod(hotkey.ModCtrl, true), key(hotkey.KeyF5, true),
			},
			want: &Outcome{Kind: Captured, Mnemonic: "Ctrl+Shift+Meta+F5"},
		},
		{
			name:   "key release ignored",
			events: []keyevent.Event{mod(hotkey.ModAlt, true), key(hotkey.KeyW, false), key(hotkey.KeyW, true)},
			want:   &Outcome{Kind: Captured, Mnemonic: "Alt+W"},
		},
		{
			name:   "modifier held before start",
			before: []keyevent.Event{mod(hotkey.ModCtrl, true)},
			events: []keyevent.Event{key(hotkey.KeyQ, true)},
			want:   &Outcome{Kind: Captured, Mnemonic: "Ctrl+Q"},
		},
		{
			name:       "modifier released before start",
			before:     []keyevent.Event{mod(hotkey.ModCtrl, true), mod(hotkey.ModCtrl, false)},
			events:     []keyevent.Event{key(hotkey.KeyQ, true)},
			wantActive: true,
		},
		{
			name:   "unknown key placeholder",
			events: []keyevent.Event{mod(hotkey.ModCtrl, true), {Code: 0xFF, Down: true}},
			want:   &Outcome{Kind: Captured, Mnemonic: "Ctrl+" + keyevent.Event{Code: 0xFF}.DisplayName()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for _, ev := range tt.before {
				m.Handle(ev)
			}
			m.Start()
			for _, ev := range tt.events {
				m.Handle(ev)
			}

			got, ok := m.Poll()
			switch {
			case tt.want == nil && ok:
				t.Errorf("Poll() = %+v, want none", got)
			case tt.want != nil && !ok:
				t.Errorf("Poll() = none, want %+v", *tt.want)
			case tt.want != nil && got != *tt.want:
				t.Errorf("Poll() = %+v, want %+v", got, *tt.want)
			}
			if m.Active() != tt.wantActive {
				t.Errorf("Active() = %v, want %v", m.Active(), tt.wantActive)
			}
		})
	}
}

func TestMachineOneShot(t *testing.T) {
	m := New()
	m.Start()
	m.Handle(mod(hotkey.ModCtrl, true))
	m.Handle(key(hotkey.KeyQ, true))

	if _, ok := m.Poll(); !ok {
		t.Fatal("Poll() = none after finalize")
	}
	if out, ok := m.Poll(); ok {
		t.Errorf("second Poll() = %+v, want none", out)
	}

	// Events after finalizing are ignored until the next Start.
	m.Handle(key(hotkey.KeyW, true))
	if out, ok := m.Poll(); ok {
		t.Errorf("Poll() after idle event = %+v, want none", out)
	}
}

func TestMachineModifiersSurviveSessions(t *testing.T) {
	m := New()
	m.Start()
	m.Handle(mod(hotkey.ModAlt, true))
	m.Handle(key(hotkey.KeyEscape, true))

	// Alt is still down when the next session begins.
	m.Start()
	m.Handle(key(hotkey.KeyW, true))
	out, ok := m.Poll()
	if !ok || out != (Outcome{Kind: Captured, Mnemonic: "Alt+W"}) {
		t.Errorf("Poll() = %+v, %v, want Alt+W", out, ok)
	}
}

func TestMachineIdleIgnoresEvents(t *testing.T) {
	m := New()
	m.Handle(mod(hotkey.ModCtrl, true))
	m.Handle(key(hotkey.KeyQ, true))
	if out, ok := m.Poll(); ok {
		t.Errorf("Poll() = %+v while never started", out)
	}
}

func TestMachineStop(t *testing.T) {
	m := New()
	m.Start()
	m.Handle(mod(hotkey.ModCtrl, true))
	m.Stop()
	m.Handle(key(hotkey.KeyQ, true))

	if out, ok := m.Poll(); ok {
		t.Errorf("Poll() = %+v after Stop", out)
	}
	if m.Active() {
		t.Error("Active() = true after Stop")
	}
}

func TestMachineStartClearsResult(t *testing.T) {
	m := New()
	m.Start()
	m.Handle(key(hotkey.KeyEscape, true))
	m.Start()
	if out, ok := m.Poll(); ok {
		t.Errorf("Poll() = %+v, want prior result cleared by Start", out)
	}
	if !m.Active() {
		t.Error("Active() = false after Start")
	}
}
