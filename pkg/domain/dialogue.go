package domain

// Node is one step of the scripted conversation.
type Node struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is a selectable choice. Exactly one of Next or Effect is meaningful.
type Option struct {
	Label  string  `json:"label" yaml:"label"`
	Next   string  `json:"next,omitempty" yaml:"next,omitempty"`
	Effect *Effect `json:"effect,omitempty" yaml:"-"`
}

// IsTransition reports whether selecting the option moves to another node.
func (o Option) IsTransition() bool {
	return o.Effect == nil && o.Next != ""
}

// IsEffect reports whether selecting the option triggers a terminal side effect.
func (o Option) IsEffect() bool {
	return o.Effect != nil
}

// NodeView is the renderable part of a node: its prompt and option labels.
type NodeView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// View returns the renderable projection of the node.
func (n Node) View() NodeView {
	labels := make([]string, len(n.Options))
	for i, o := range n.Options {
		labels[i] = o.Label
	}
	return NodeView{ID: n.ID, Text: n.Text, Options: labels}
}
