/*
Package dialogue implements the scripted conversation engine behind the chatbot widget.

A Graph is an immutable set of nodes built once from configuration. The Engine walks it
for a single visitor: it echoes the visitor's choice immediately, waits a short delay,
then either moves to the next node (falling back to the root when the target is unknown)
or hands a terminal Effect to the host's EffectHandler. Bot prompts appear after a typing
delay, and selections are rejected while any delay is pending, so at most one transition
is in flight per session.
*/
package dialogue
