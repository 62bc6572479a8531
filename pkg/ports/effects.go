package ports

import (
	"context"

	"github.com/aretw0/vitrine/pkg/domain"
)

// EffectHandler interprets the side effects requested by dialogue options.
// The engine emits effects, and the host decides how to perform them.
type EffectHandler interface {
	HandleEffect(ctx context.Context, effect domain.Effect) error
}

// EffectHandlerFunc adapts a function to EffectHandler.
type EffectHandlerFunc func(ctx context.Context, effect domain.Effect) error

// HandleEffect calls f(ctx, effect).
func (f EffectHandlerFunc) HandleEffect(ctx context.Context, effect domain.Effect) error {
	return f(ctx, effect)
}
