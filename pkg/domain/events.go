package domain

import (
	"context"
	"time"
)

// EventType defines the category of an engine event.
type EventType string

const (
	EventSlideChange    EventType = "slide_change"
	EventNodeEnter      EventType = "node_enter"
	EventMessage        EventType = "message"
	EventTyping         EventType = "typing"
	EventOptionSelected EventType = "option_selected"
	EventEffect         EventType = "effect"
	EventFallback       EventType = "fallback"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SlideEvent reports a carousel state change.
type SlideEvent struct {
	EventBase
	Carousel string           `json:"carousel"`
	Snapshot CarouselSnapshot `json:"snapshot"`
	Auto     bool             `json:"auto"`
}

// DialogueEvent reports a conversation change.
type DialogueEvent struct {
	EventBase
	NodeID  string    `json:"node_id,omitempty"`
	Node    *NodeView `json:"node,omitempty"`
	Message *Message  `json:"message,omitempty"`
	Typing  bool      `json:"typing"`
	Option  string    `json:"option,omitempty"`
	Effect  *Effect   `json:"effect,omitempty"`
	Href    string    `json:"href,omitempty"`
}

// CarouselHooks defines callbacks for carousel observability.
type CarouselHooks struct {
	OnChange func(context.Context, *SlideEvent)
}

// DialogueHooks defines callbacks for conversation observability.
type DialogueHooks struct {
	OnNodeEnter      func(context.Context, *DialogueEvent)
	OnMessage        func(context.Context, *DialogueEvent)
	OnTyping         func(context.Context, *DialogueEvent)
	OnOptionSelected func(context.Context, *DialogueEvent)
	OnEffect         func(context.Context, *DialogueEvent)
	OnFallback       func(context.Context, *DialogueEvent)
}

// MergeCarouselHooks fans out every callback to all non-nil hooks in order.
func MergeCarouselHooks(hooks ...CarouselHooks) CarouselHooks {
	return CarouselHooks{
		OnChange: func(ctx context.Context, e *SlideEvent) {
			for _, h := range hooks {
				if h.OnChange != nil {
					h.OnChange(ctx, e)
				}
			}
		},
	}
}

// MergeDialogueHooks fans out every callback to all non-nil hooks in order.
func MergeDialogueHooks(hooks ...DialogueHooks) DialogueHooks {
	pick := func(get func(DialogueHooks) func(context.Context, *DialogueEvent)) func(context.Context, *DialogueEvent) {
		return func(ctx context.Context, e *DialogueEvent) {
			for _, h := range hooks {
				if fn := get(h); fn != nil {
					fn(ctx, e)
				}
			}
		}
	}
	return DialogueHooks{
		OnNodeEnter:      pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnNodeEnter }),
		OnMessage:        pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnMessage }),
		OnTyping:         pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnTyping }),
		OnOptionSelected: pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnOptionSelected }),
		OnEffect:         pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnEffect }),
		OnFallback:       pick(func(h DialogueHooks) func(context.Context, *DialogueEvent) { return h.OnFallback }),
	}
}
