package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SearchDebounceDuration is how long typing must pause before a search fires.
const SearchDebounceDuration = 300 * time.Millisecond

// DebounceMsg is delivered when a debounce window elapses. Gen identifies the
// keystroke that armed it; only the newest generation is acted on.
type DebounceMsg struct {
	Gen uint64
}

// Debouncer coalesces rapid triggers inside a bubbletea program. Each Trigger
// bumps the generation and schedules a tick; stale ticks carry an old
// generation and are ignored by Current. Timer-callback debouncing does not
// work here because only the program loop may mutate a model.
type Debouncer struct {
	duration time.Duration
	gen      uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Trigger arms the debounce window and returns the tick command to schedule.
func (d *Debouncer) Trigger() tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.duration, func(time.Time) tea.Msg {
		return DebounceMsg{Gen: gen}
	})
}

// Current reports whether msg is the newest armed window. A false return
// means a later trigger superseded this one and the tick must be dropped.
func (d *Debouncer) Current(msg DebounceMsg) bool {
	return msg.Gen == d.gen
}

// Cancel invalidates any armed window without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.gen++
}
