package dsl

import (
	"fmt"

	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
)

// Builder manages the script construction.
type Builder struct {
	root  string
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new script builder rooted at dialogue.DefaultRoot.
func New() *Builder {
	return &Builder{
		root:  dialogue.DefaultRoot,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Root changes the entry node.
func (b *Builder) Root(id string) *Builder {
	b.root = id
	return b
}

// Add creates a new node in the script.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the script into a graph, in the order nodes were added.
func (b *Builder) Build() (*dialogue.Graph, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}

	g, err := dialogue.NewGraph(b.root, nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build script: %w", err)
	}
	return g, nil
}
