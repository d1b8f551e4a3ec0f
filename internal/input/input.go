package input

import "strings"

// Key is a host-independent key code.
type Key uint8

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyBack
	KeyEnter
	KeySpace
	KeyEscape
	KeyCtrl
	keyCount
)

var keyNames = [keyCount]string{
	"", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P",
	"Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"Left", "Up", "Right", "Down", "Back", "Enter", "Space", "Escape", "Ctrl",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Key(?)"
	}
	return keyNames[k]
}

// ParseKey resolves a script-facing key name such as "A", "7" or "Left".
// Letter names are matched case-insensitively.
func ParseKey(name string) (Key, bool) {
	if len(name) == 1 {
		name = strings.ToUpper(name)
	}
	for i := KeyA; i < keyCount; i++ {
		if keyNames[i] == name {
			return i, true
		}
	}
	return KeyNone, false
}

// LetterKey maps 'a'..'z' / 'A'..'Z' to a key.
func LetterKey(b byte) (Key, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return KeyA + Key(b-'a'), true
	case b >= 'A' && b <= 'Z':
		return KeyA + Key(b-'A'), true
	}
	return KeyNone, false
}

// Keys is a set of keys. It is a plain value so a snapshot can be copied freely.
type Keys uint64

// Of builds a key set.
func Of(keys ...Key) Keys {
	var s Keys
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// Has reports whether k is in the set.
func (s Keys) Has(k Key) bool { return s&(1<<k) != 0 }

// With returns the set plus k.
func (s Keys) With(k Key) Keys { return s | 1<<k }

// Without returns the set minus k.
func (s Keys) Without(k Key) Keys { return s &^ (1 << k) }

// Pointer is the pointer state in region-local pixels. X and Y are -1 when
// the pointer is outside the region.
type Pointer struct {
	X, Y        int
	Pressed     bool
	JustPressed bool
}

// Outside is the pointer value for "not over this region".
var Outside = Pointer{X: -1, Y: -1}

// In reports whether the pointer lies inside the w x h box at (x, y).
func (p Pointer) In(x, y, w, h int) bool {
	return p.X != -1 && p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
}

// ClickedIn reports a press edge inside the box.
func (p Pointer) ClickedIn(x, y, w, h int) bool {
	return p.JustPressed && p.In(x, y, w, h)
}

// Snapshot is the complete input for one frame. It is read-only for the
// duration of an update pass.
type Snapshot struct {
	Pointer Pointer
	// Wheel is the scroll delta this frame; positive scrolls up.
	Wheel int
	Held  Keys
	// Just holds keys whose press edge happened this frame.
	Just Keys
}

// Chord reports Ctrl held together with k.
func (s Snapshot) Chord(k Key) bool {
	return s.Held.Has(KeyCtrl) && s.Held.Has(k)
}

// ChordPressed reports Ctrl held and k pressed this frame.
func (s Snapshot) ChordPressed(k Key) bool {
	return s.Held.Has(KeyCtrl) && s.Just.Has(k)
}

// Rect is a screen region in frame pixels.
type Rect struct {
	X, Y, W, H int
}

// Localize translates a frame-space snapshot into r's coordinates. When the
// pointer is outside r it becomes Outside and carries no button state or
// wheel delta.
func Localize(s Snapshot, r Rect) Snapshot {
	p := s.Pointer
	if p.X < r.X || p.Y < r.Y || p.X >= r.X+r.W || p.Y >= r.Y+r.H {
		s.Pointer = Outside
		s.Wheel = 0
		return s
	}
	p.X -= r.X
	p.Y -= r.Y
	s.Pointer = p
	return s
}
