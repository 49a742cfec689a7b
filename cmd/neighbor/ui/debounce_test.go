package ui

import (
	"testing"
	"time"
)

func TestDebouncer_LatestTriggerWins(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger()
	first := DebounceMsg{Gen: 1}
	d.Trigger()
	second := DebounceMsg{Gen: 2}

	if d.Current(first) {
		t.Error("first window must be superseded by the second trigger")
	}
	if !d.Current(second) {
		t.Error("second window must be current")
	}
}

func TestDebouncer_TickCarriesItsGeneration(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	cmd := d.Trigger()
	if cmd == nil {
		t.Fatal("Trigger must return a command")
	}

	msg := cmd()
	tick, ok := msg.(DebounceMsg)
	if !ok {
		t.Fatalf("expected DebounceMsg, got %T", msg)
	}
	if !d.Current(tick) {
		t.Error("an undisturbed window must still be current when its tick lands")
	}
}

func TestDebouncer_CancelInvalidates(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	cmd := d.Trigger()
	msg := cmd().(DebounceMsg)

	d.Cancel()
	if d.Current(msg) {
		t.Error("a canceled window must not be current")
	}
}
