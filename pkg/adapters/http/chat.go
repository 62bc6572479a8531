package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/observability"
)

// EffectRecord is an effect the visitor's browser should perform.
type EffectRecord struct {
	Kind   domain.EffectKind `json:"kind"`
	Href   string            `json:"href"`
	NewTab bool              `json:"new_tab"`
	At     time.Time         `json:"at"`
}

// chatSession is a dialogue engine plus the effects it has requested.
// Clients that do not hold an event stream read the effects on their next poll.
type chatSession struct {
	engine *dialogue.Engine
	clock  func() time.Time

	mu      sync.Mutex
	effects []EffectRecord
}

func (c *chatSession) HandleEffect(_ context.Context, eff domain.Effect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.effects = append(c.effects, EffectRecord{
		Kind:   eff.Kind,
		Href:   eff.Href(),
		NewTab: eff.NewTab,
		At:     c.clock(),
	})
	return nil
}

func (c *chatSession) Effects() []EffectRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]EffectRecord, len(c.effects))
	copy(out, c.effects)
	return out
}

func (c *chatSession) Close() error {
	return c.engine.Close()
}

// ChatView is the JSON form of a chat session.
type ChatView struct {
	ID       string                      `json:"id"`
	Snapshot domain.ConversationSnapshot `json:"snapshot"`
	Effects  []EffectRecord              `json:"effects"`
}

type selectRequest struct {
	Index int `json:"index"`
}

func (s *Server) dialogueHooks() domain.DialogueHooks {
	stream := func(_ context.Context, e *domain.DialogueEvent) {
		s.streams.BroadcastJSON(e.SessionID, string(e.Type), e)
	}
	hooks := []domain.DialogueHooks{
		observability.LogDialogueHooks(s.logger),
		{
			OnNodeEnter:      stream,
			OnMessage:        stream,
			OnTyping:         stream,
			OnOptionSelected: stream,
			OnEffect:         stream,
			OnFallback:       stream,
		},
	}
	if s.metrics != nil {
		hooks = append(hooks, s.metrics.DialogueHooks())
	}
	return domain.MergeDialogueHooks(hooks...)
}

// NewChat opens a chat session and greets the visitor.
func (s *Server) NewChat() (string, error) {
	id, cs, err := s.chats.Create(func(id string) (*chatSession, error) {
		cs := &chatSession{clock: s.clock.Now}
		cs.engine = dialogue.New(s.site.Graph(),
			dialogue.WithClock(s.clock),
			dialogue.WithDelays(s.site.Delays()),
			dialogue.WithEffectHandler(cs),
			dialogue.WithHooks(s.dialogueHooks()),
			dialogue.WithLogger(s.logger),
			dialogue.WithSessionID(id),
		)
		return cs, nil
	})
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.SessionOpened(KindChat)
	}
	if err := cs.engine.Start(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Server) chatView(id string) (ChatView, error) {
	cs, err := s.chats.Get(id)
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{ID: id, Snapshot: cs.engine.Snapshot(), Effects: cs.Effects()}, nil
}

func (s *Server) createChat(w http.ResponseWriter, r *http.Request) {
	id, err := s.NewChat()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.chatView(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, view)
}

func (s *Server) getChat(w http.ResponseWriter, r *http.Request) {
	view, err := s.chatView(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

func (s *Server) selectOption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req selectRequest
	if err := s.decodeBody(r, "SelectRequest", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := s.chats.WithLock(id, func(cs *chatSession) error {
		return cs.engine.Select(r.Context(), req.Index)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.chatView(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusAccepted, view)
}

func (s *Server) closeChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chats.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) chatEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cs, err := s.chats.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveStream(w, r, id, func() any { return cs.engine.Snapshot() })
}
