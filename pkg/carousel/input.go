package carousel

import "math"

// Keyboard keys that move the carousel.
const (
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
)

// Swipe interprets a horizontal drag from startX to endX. Drags shorter than the
// policy threshold are treated as taps and ignored. It reports whether the
// carousel moved.
func (e *Engine) Swipe(startX, endX float64) bool {
	delta := endX - startX
	if math.Abs(delta) <= e.policy.SwipeThreshold {
		return false
	}
	if delta > 0 {
		e.Prev()
	} else {
		e.Next()
	}
	return true
}

// Key maps arrow keys to navigation. It reports whether the key was handled.
func (e *Engine) Key(key string) bool {
	switch key {
	case KeyLeft:
		e.Prev()
	case KeyRight:
		e.Next()
	default:
		return false
	}
	return true
}

// Gallery zoom bounds used by product image galleries.
const (
	MinZoom  = 1.0
	MaxZoom  = 3.0
	ZoomStep = 1.2
)

// ZoomIn scales z up by one step, capped at MaxZoom.
func ZoomIn(z float64) float64 {
	return math.Min(z*ZoomStep, MaxZoom)
}

// ZoomOut scales z down by one step, floored at MinZoom.
func ZoomOut(z float64) float64 {
	return math.Max(z/ZoomStep, MinZoom)
}
