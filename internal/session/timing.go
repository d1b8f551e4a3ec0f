package session

import "time"

// Frame rate bounds. Scripts may ask for anything in between.
const (
	MinFrameRate = 1
	MaxFrameRate = 120
)

// FrameInterval converts a frame rate to the ticker period, clamping it to
// the supported range.
func FrameInterval(fps int) time.Duration {
	fps = max(MinFrameRate, min(fps, MaxFrameRate))
	return time.Second / time.Duration(fps)
}
