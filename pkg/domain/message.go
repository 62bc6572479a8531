package domain

import "time"

// Message is one entry of the conversation transcript.
type Message struct {
	Text      string    `json:"text"`
	FromBot   bool      `json:"from_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSnapshot is a read-only copy of a dialogue session.
type ConversationSnapshot struct {
	Node     NodeView  `json:"node"`
	Messages []Message `json:"messages"`
	Typing   bool      `json:"typing"`
	Busy     bool      `json:"busy"`
}
