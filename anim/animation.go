package anim

import (
	"time"

	"github.com/alacrity-engine/dfanim/dferr"
)

// MinFrameDuration is the shortest time in seconds
// a frame is shown for. Frames with a zero delay
// would otherwise stall playback.
const MinFrameDuration = 0.001

// Layer is a sprite drawn as part of a frame.
type Layer struct {
	// SpriteName is the sprite path in the sprite
	// sheet, e.g. "/brown/2".
	SpriteName string
	X          int32
	Y          int32
	// Z is the draw order.
	Z int32
}

// Frame is a single step of an animation.
type Frame struct {
	// Index is the index declared in the file.
	Index uint32
	// Delay is the delay as authored, in editor units.
	Delay uint32
	// DelayMillis is the delay in milliseconds.
	DelayMillis uint32
	Layers      []Layer
}

func (frame Frame) clone() Frame {
	frame.Layers = append([]Layer(nil), frame.Layers...)
	return frame
}

// Animation is a sequence of frames together
// with a playback cursor. An Animation must
// not be advanced from multiple goroutines
// at once; get a separate copy for each owner
// instead.
type Animation struct {
	Name string
	// LoopCount is the number of loops as authored,
	// 0 meaning forever. Playback ignores it unless
	// LimitLoops is enabled.
	LoopCount int

	frames []Frame

	current  int
	elapsed  float64
	loops    int
	limited  bool
	finished bool

	lastUpdate time.Duration
	started    bool
}

// New creates a new animation out of the frames.
// The frames are copied.
func New(name string, loopCount int, frames []Frame) *Animation {
	copied := make([]Frame, 0, len(frames))

	for _, frame := range frames {
		copied = append(copied, frame.clone())
	}

	return &Animation{
		Name:      name,
		LoopCount: loopCount,
		frames:    copied,
	}
}

// Clone returns a deep copy of the animation
// with the playback cursor rewound.
func (a *Animation) Clone() *Animation {
	clone := New(a.Name, a.LoopCount, a.frames)
	clone.limited = a.limited

	return clone
}

// Len returns the number of frames.
func (a *Animation) Len() int {
	return len(a.frames)
}

// Frames returns a copy of the frames.
func (a *Animation) Frames() []Frame {
	frames := make([]Frame, 0, len(a.frames))

	for _, frame := range a.frames {
		frames = append(frames, frame.clone())
	}

	return frames
}

// CurrentIndex returns the position of the
// current frame in the frame sequence.
func (a *Animation) CurrentIndex() int {
	return a.current
}

// CurrentFrame returns the frame to display.
func (a *Animation) CurrentFrame() (Frame, bool) {
	if len(a.frames) == 0 {
		return Frame{}, false
	}

	return a.frames[a.current], true
}

// Reset rewinds playback to the first frame.
func (a *Animation) Reset() {
	a.current = 0
	a.elapsed = 0
	a.loops = 0
	a.finished = false
	a.started = false
	a.lastUpdate = 0
}

// LimitLoops makes playback stop on the last frame
// after LoopCount loops. Animations with a LoopCount
// of 0 still loop forever.
func (a *Animation) LimitLoops(enabled bool) {
	a.limited = enabled
}

// Finished reports whether playback has stopped
// because of the loop limit.
func (a *Animation) Finished() bool {
	return a.finished
}

func (a *Animation) frameDuration(speed float64) float64 {
	duration := float64(a.frames[a.current].DelayMillis) / speed / 1000

	if duration <= 0 {
		duration = MinFrameDuration
	}

	return duration
}

// Advance moves playback forward by dt seconds scaled
// by speed. A non-positive speed is treated as 1.
// Non-positive deltas are accumulated but never move
// the cursor. A single call can skip several frames.
func (a *Animation) Advance(dt, speed float64) error {
	if len(a.frames) == 0 {
		return dferr.New(dferr.EmptyAnimation,
			"animation '%s' has no frames", a.Name)
	}

	if speed <= 0 {
		speed = 1
	}

	a.elapsed += dt

	if dt <= 0 || a.finished {
		return nil
	}

	duration := a.frameDuration(speed)

	for a.elapsed > duration {
		a.elapsed -= duration

		if a.current+1 < len(a.frames) {
			a.current++
		} else {
			a.loops++

			if a.limited && a.LoopCount > 0 && a.loops >= a.LoopCount {
				a.finished = true
				a.elapsed = 0

				return nil
			}

			a.current = 0
		}

		duration = a.frameDuration(speed)
	}

	return nil
}

// Update advances playback to the given timestamp at
// normal speed. The first call only records the timestamp.
func (a *Animation) Update(now time.Duration) error {
	if !a.started {
		a.started = true
		a.lastUpdate = now

		if len(a.frames) == 0 {
			return dferr.New(dferr.EmptyAnimation,
				"animation '%s' has no frames", a.Name)
		}

		return nil
	}

	diff := now - a.lastUpdate

	if diff <= 0 {
		return nil
	}

	a.lastUpdate = now

	return a.Advance(diff.Seconds(), 1)
}
