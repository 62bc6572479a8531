package dialogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/vitrine/pkg/domain"
)

// DefaultRoot is the conventional entry node ID.
const DefaultRoot = "root"

// Graph is an immutable conversation graph.
type Graph struct {
	root  string
	nodes map[string]domain.Node
	order []string
}

// NewGraph builds a graph and checks its structural invariants.
// Dangling Next references are allowed (the engine falls back to the root);
// use Lint to report them.
func NewGraph(root string, nodes []domain.Node) (*Graph, error) {
	if root == "" {
		root = DefaultRoot
	}
	g := &Graph{
		root:  root,
		nodes: make(map[string]domain.Node, len(nodes)),
	}

	var errs []error
	for _, n := range nodes {
		if n.ID == "" {
			errs = append(errs, errors.New("node missing id"))
			continue
		}
		if _, dup := g.nodes[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
			continue
		}
		for i, opt := range n.Options {
			if err := checkOption(opt); err != nil {
				errs = append(errs, fmt.Errorf("node %q option %d (%q): %w", n.ID, i, opt.Label, err))
			}
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	if _, ok := g.nodes[root]; !ok {
		errs = append(errs, fmt.Errorf("root node %q not defined", root))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid dialogue graph: %w", err)
	}
	return g, nil
}

func checkOption(opt domain.Option) error {
	if opt.Label == "" {
		return errors.New("missing label")
	}
	switch {
	case opt.Effect != nil && opt.Next != "":
		return errors.New("option has both next and effect")
	case opt.Effect == nil && opt.Next == "":
		return errors.New("option has neither next nor effect")
	case opt.Effect != nil:
		return opt.Effect.Validate()
	}
	return nil
}

// Root returns the entry node.
func (g *Graph) Root() domain.Node {
	return g.nodes[g.root]
}

// RootID returns the entry node ID.
func (g *Graph) RootID() string {
	return g.root
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in definition order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Issue is a non-fatal finding reported by Lint.
type Issue struct {
	NodeID  string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.NodeID, i.Message)
}

// Lint crawls the graph from the root and reports dangling references and
// unreachable nodes. Neither is fatal at runtime.
func (g *Graph) Lint() []Issue {
	var issues []Issue
	visited := map[string]bool{}
	queue := []string{g.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, opt := range g.nodes[id].Options {
			if !opt.IsTransition() {
				continue
			}
			if _, ok := g.nodes[opt.Next]; !ok {
				issues = append(issues, Issue{
					NodeID:  id,
					Message: fmt.Sprintf("option %q points to unknown node %q (falls back to %q)", opt.Label, opt.Next, g.root),
				})
				continue
			}
			queue = append(queue, opt.Next)
		}
	}

	var unreachable []string
	for _, id := range g.order {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	sort.Strings(unreachable)
	for _, id := range unreachable {
		issues = append(issues, Issue{NodeID: id, Message: "unreachable from root"})
	}
	return issues
}
