/*
Package ports defines the driven ports (interfaces) for the Vitrine engines.

These interfaces decouple the engines from time, content sources and the host
environment, so the same engines run behind the HTTP server, the MCP adapter and
the terminal chat.

# Key Interfaces

  - Clock: schedules cancellable callbacks (auto-advance, typing delays, resume timers).
  - EffectHandler: interprets the side effects requested by dialogue options.
  - CatalogSource: supplies the product records.
*/
package ports
