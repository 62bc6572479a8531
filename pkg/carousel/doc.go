/*
Package carousel implements the auto-advancing, pausable slideshow engine shared by the
hero section, the testimonials and the product image galleries.

An Engine owns an ordered, immutable slide list and an active index. It advances on a
timer while auto-advance is enabled and accepts manual navigation (next, prev, jump,
swipe, keyboard). Manual interaction suppresses auto-advance and schedules a debounced
resume; embedded media playback suppresses it until playback pauses.

Every timer the engine creates is owned by the instance and cancelled by Close.
*/
package carousel
