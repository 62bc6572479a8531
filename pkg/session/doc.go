/*
Package session keeps the live widget instances owned by each visitor.

Instances (carousel and dialogue engines) hold running timers, so they live in
process memory only. The Manager hands out opaque ids, serializes multi-step
operations per id, evicts instances that sit idle and closes everything it evicts.
*/
package session
