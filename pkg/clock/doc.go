// Package clock provides the wall-clock and manual implementations of ports.Clock.
package clock
