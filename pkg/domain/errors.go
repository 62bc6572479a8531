package domain

import "errors"

// ErrNoSlides is returned when a carousel is configured without slides.
var ErrNoSlides = errors.New("carousel has no slides")

// ErrBusy is returned when an option is selected while a delayed transition is pending.
var ErrBusy = errors.New("conversation is busy")

// ErrClosed is returned when an engine is used after teardown.
var ErrClosed = errors.New("engine closed")

// ErrUnknownOption is returned when the selected option does not exist on the current node.
var ErrUnknownOption = errors.New("unknown option")

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrCatalogUnavailable is returned when the product catalog cannot be read.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ErrUnknownCarousel is returned when a carousel name (or gallery product) is not configured.
var ErrUnknownCarousel = errors.New("unknown carousel")
