/*
Package domain contains the core models shared by the Vitrine engines and adapters.

It is kept free of I/O so both engines (carousel and dialogue) and every adapter
(HTTP, MCP, terminal) agree on the same vocabulary.

# Key Entities

  - Slide: one unit of carousel content (video, image or text).
  - CarouselState: the active slide index and whether a move is in flight.
  - Node / Option: a step of the scripted conversation and its selectable choices.
  - Effect: a terminal side effect requested by an option, interpreted by the host.
  - Message: one line of the conversation transcript.
  - Product, ServiceCenter, Testimonial, FAQ: static site content.
*/
package domain
