/*
Package observability turns engine lifecycle hooks into Prometheus metrics and
structured log lines.

Both producers return plain domain hook structs, so they compose with
domain.MergeCarouselHooks and domain.MergeDialogueHooks.
*/
package observability
