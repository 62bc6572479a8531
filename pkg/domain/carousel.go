package domain

import "time"

// CarouselState is the observable position of a carousel.
// ActiveIndex is always a valid index into the slide list.
type CarouselState struct {
	ActiveIndex   int  `json:"active_index"`
	Transitioning bool `json:"transitioning"`
}

// AutoAdvancePolicy configures timer-driven progression and its suppression.
type AutoAdvancePolicy struct {
	Enabled            bool          `json:"enabled" yaml:"auto_advance"`
	Interval           time.Duration `json:"interval" yaml:"interval"`
	ResumeDelay        time.Duration `json:"resume_delay" yaml:"resume_delay"`
	TransitionDuration time.Duration `json:"transition_duration" yaml:"transition_duration"`
	SwipeThreshold     float64       `json:"swipe_threshold" yaml:"swipe_threshold"`
}

// Defaults observed on the hero section.
const (
	DefaultInterval           = 10 * time.Second
	DefaultResumeDelay        = 18 * time.Second
	DefaultTransitionDuration = 500 * time.Millisecond
	DefaultSwipeThreshold     = 50
)

// DefaultPolicy returns the hero carousel policy.
func DefaultPolicy() AutoAdvancePolicy {
	return AutoAdvancePolicy{
		Enabled:            true,
		Interval:           DefaultInterval,
		ResumeDelay:        DefaultResumeDelay,
		TransitionDuration: DefaultTransitionDuration,
		SwipeThreshold:     DefaultSwipeThreshold,
	}
}

// WithDefaults fills zero durations and thresholds from DefaultPolicy.
func (p AutoAdvancePolicy) WithDefaults() AutoAdvancePolicy {
	d := DefaultPolicy()
	if p.Interval <= 0 {
		p.Interval = d.Interval
	}
	if p.ResumeDelay <= 0 {
		p.ResumeDelay = d.ResumeDelay
	}
	if p.TransitionDuration <= 0 {
		p.TransitionDuration = d.TransitionDuration
	}
	if p.SwipeThreshold <= 0 {
		p.SwipeThreshold = d.SwipeThreshold
	}
	return p
}

// CarouselSnapshot is a read-only copy of a carousel for rendering.
type CarouselSnapshot struct {
	Name         string        `json:"name"`
	State        CarouselState `json:"state"`
	AutoAdvance  bool          `json:"auto_advance"`
	MediaPlaying bool          `json:"media_playing"`
	Count        int           `json:"count"`
}
