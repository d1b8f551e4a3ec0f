package input

// EventKind identifies a raw host input event.
type EventKind int

const (
	EventMove EventKind = iota
	EventButton
	EventWheel
	EventKeyDown
	EventKeyUp
	// EventKeyTap is a key press with no matching release, as delivered by
	// terminals. The key is held for the current frame only.
	EventKeyTap
	EventQuit
)

// Event is one raw input event from a host.
type Event struct {
	Kind  EventKind
	X, Y  int
	Down  bool
	Delta int
	Key   Key
	Ctrl  bool
}

// Tracker folds raw events into per-frame snapshots. The host feeds it
// events, takes one Snapshot per frame, and calls EndFrame once every
// consumer has run; EndFrame is the only place edge state is cleared.
type Tracker struct {
	pointer Pointer
	wheel   int
	held    Keys
	just    Keys
	tapped  Keys

	releasePending bool
}

// NewTracker returns a tracker with the pointer outside the frame.
func NewTracker() *Tracker {
	return &Tracker{pointer: Outside}
}

// Apply folds one event into the pending frame state.
func (t *Tracker) Apply(ev Event) {
	switch ev.Kind {
	case EventMove:
		t.pointer.X, t.pointer.Y = ev.X, ev.Y
	case EventButton:
		if ev.Down {
			if !t.pointer.Pressed {
				t.pointer.JustPressed = true
			}
			t.pointer.Pressed = true
			t.releasePending = false
		} else if t.pointer.JustPressed {
			// Press and release inside one frame: let the frame see the click.
			t.releasePending = true
		} else {
			t.pointer.Pressed = false
		}
	case EventWheel:
		t.wheel += ev.Delta
	case EventKeyDown:
		if !t.held.Has(ev.Key) {
			t.just = t.just.With(ev.Key)
		}
		t.held = t.held.With(ev.Key)
	case EventKeyUp:
		t.held = t.held.Without(ev.Key)
	case EventKeyTap:
		keys := Of(ev.Key)
		if ev.Ctrl {
			keys = keys.With(KeyCtrl)
		}
		t.tapped |= keys &^ t.held
		t.held |= keys
		t.just = t.just.With(ev.Key)
	}
}

// Leave marks the pointer as outside the frame.
func (t *Tracker) Leave() {
	t.pointer = Outside
	t.releasePending = false
}

// Snapshot returns the state for the current frame.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Pointer: t.pointer,
		Wheel:   t.wheel,
		Held:    t.held,
		Just:    t.just,
	}
}

// EndFrame clears every edge: pointer press edge, key press edges, wheel
// delta and tapped keys.
func (t *Tracker) EndFrame() {
	t.pointer.JustPressed = false
	if t.releasePending {
		t.pointer.Pressed = false
		t.releasePending = false
	}
	t.wheel = 0
	t.just = 0
	t.held &^= t.tapped
	t.tapped = 0
}
