package input

// ParseTerminal converts raw terminal bytes into events. Mouse events use
// xterm SGR reporting and carry 0-based terminal cell coordinates in X, Y;
// the host maps cells to frame pixels. Keys arrive as taps since terminals
// do not report releases. Ctrl+letter arrives as the matching control byte,
// so Ctrl+C copies instead of quitting; Escape and Ctrl+Q quit.
func ParseTerminal(data []byte) []Event {
	var events []Event
	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			// SGR mouse: ESC [ < b ; x ; y M|m
			if i+2 < len(data) && data[i+1] == '[' && data[i+2] == '<' {
				evs, n := parseSGRMouse(data[i+3:])
				if n > 0 {
					events = append(events, evs...)
					i += 3 + n
					continue
				}
				// Incomplete sequence: drop the rest of the buffer.
				return events
			}
			// Arrow keys: ESC [ A..D
			if i+2 < len(data) && data[i+1] == '[' {
				switch data[i+2] {
				case 'A':
					events = append(events, tap(KeyUp, false))
				case 'B':
					events = append(events, tap(KeyDown, false))
				case 'C':
					events = append(events, tap(KeyRight, false))
				case 'D':
					events = append(events, tap(KeyLeft, false))
				}
				i += 3
				continue
			}
			events = append(events, tap(KeyEscape, false), Event{Kind: EventQuit})
			i++
			continue
		}

		switch {
		case b == 0x11: // Ctrl-Q
			events = append(events, Event{Kind: EventQuit})
		case b == '\r' || b == '\n':
			events = append(events, tap(KeyEnter, false))
		case b == 0x7f || b == 0x08:
			events = append(events, tap(KeyBack, false))
		case b == ' ':
			events = append(events, tap(KeySpace, false))
		case b >= 0x01 && b <= 0x1a:
			events = append(events, tap(KeyA+Key(b-0x01), true))
		case b >= '0' && b <= '9':
			events = append(events, tap(Key0+Key(b-'0'), false))
		default:
			if k, ok := LetterKey(b); ok {
				events = append(events, tap(k, false))
			}
		}
		i++
	}
	return events
}

func tap(k Key, ctrl bool) Event {
	return Event{Kind: EventKeyTap, Key: k, Ctrl: ctrl}
}

// parseSGRMouse parses "b;x;yM" and returns the events plus bytes consumed,
// or 0 if the sequence is incomplete or malformed.
func parseSGRMouse(data []byte) ([]Event, int) {
	var nums [3]int
	field := 0
	for i, b := range data {
		switch {
		case b >= '0' && b <= '9':
			nums[field] = nums[field]*10 + int(b-'0')
		case b == ';':
			field++
			if field > 2 {
				return nil, 0
			}
		case b == 'M' || b == 'm':
			if field != 2 {
				return nil, 0
			}
			return mouseEvents(nums[0], nums[1]-1, nums[2]-1, b == 'M'), i + 1
		default:
			return nil, 0
		}
	}
	return nil, 0
}

func mouseEvents(button, col, row int, press bool) []Event {
	move := Event{Kind: EventMove, X: col, Y: row}
	switch {
	case button&64 != 0:
		delta := 1
		if button&1 != 0 {
			delta = -1
		}
		return []Event{move, {Kind: EventWheel, Delta: delta}}
	case button&32 != 0:
		return []Event{move}
	case button&3 == 0:
		return []Event{move, {Kind: EventButton, Down: press}}
	}
	return []Event{move}
}
