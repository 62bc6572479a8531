package dialogue

import (
	"fmt"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Outcome is the result of selecting an option: either a transition or an effect.
type Outcome struct {
	Option domain.Option
	// Target is the node to enter for transitions. It is the root when the
	// option's Next was unresolved (see Fallback).
	Target   domain.Node
	Fallback bool
	Effect   *domain.Effect
}

// IsEffect reports whether the outcome is a terminal side effect.
func (o Outcome) IsEffect() bool {
	return o.Effect != nil
}

// Resolve computes the outcome of choosing option index on node nodeID
// without any timing. An unknown nodeID is treated as the root.
func Resolve(g *Graph, nodeID string, index int) (Outcome, error) {
	node, ok := g.Node(nodeID)
	if !ok {
		node = g.Root()
	}
	if index < 0 || index >= len(node.Options) {
		return Outcome{}, fmt.Errorf("%w: %d on node %q", domain.ErrUnknownOption, index, node.ID)
	}
	opt := node.Options[index]
	if opt.Effect != nil {
		eff := *opt.Effect
		return Outcome{Option: opt, Effect: &eff}, nil
	}
	target, ok := g.Node(opt.Next)
	if !ok {
		return Outcome{Option: opt, Target: g.Root(), Fallback: true}, nil
	}
	return Outcome{Option: opt, Target: target}, nil
}
