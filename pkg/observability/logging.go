package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vitrine/pkg/domain"
)

// LogCarouselHooks logs slide moves at debug level.
func LogCarouselHooks(logger *slog.Logger) domain.CarouselHooks {
	return domain.CarouselHooks{
		OnChange: func(ctx context.Context, e *domain.SlideEvent) {
			logger.DebugContext(ctx, "slide_change",
				"session_id", e.SessionID,
				"carousel", e.Carousel,
				"active_index", e.Snapshot.State.ActiveIndex,
				"transitioning", e.Snapshot.State.Transitioning,
				"auto", e.Auto,
			)
		},
	}
}

// LogDialogueHooks logs conversation progress. Fallbacks are already warned about by the engine.
func LogDialogueHooks(logger *slog.Logger) domain.DialogueHooks {
	return domain.DialogueHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.DialogueEvent) {
			logger.InfoContext(ctx, "node_enter", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnOptionSelected: func(ctx context.Context, e *domain.DialogueEvent) {
			logger.InfoContext(ctx, "option_selected", "session_id", e.SessionID, "node_id", e.NodeID, "option", e.Option)
		},
		OnEffect: func(ctx context.Context, e *domain.DialogueEvent) {
			logger.InfoContext(ctx, "effect", "session_id", e.SessionID, "kind", e.Effect.Kind, "href", e.Href)
		},
	}
}
