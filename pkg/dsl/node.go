package dsl

import "github.com/aretw0/vitrine/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Say sets the bot message shown when the node is entered.
func (n *NodeBuilder) Say(text string) *NodeBuilder {
	n.node.Text = text
	return n
}

// Go adds an option that moves the conversation to the target node.
func (n *NodeBuilder) Go(label, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{Label: label, Next: target})
	return n
}

// Do adds an option that requests a side effect and stays on the node.
func (n *NodeBuilder) Do(label string, eff domain.Effect) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{Label: label, Effect: &eff})
	return n
}

// Open adds an option that opens an external URL in a new tab.
func (n *NodeBuilder) Open(label, url string) *NodeBuilder {
	return n.Do(label, domain.Effect{Kind: domain.EffectOpenURL, URL: url, NewTab: true})
}

// Mail adds an option that opens a prefilled mail composer.
func (n *NodeBuilder) Mail(label, to, subject, body string) *NodeBuilder {
	return n.Do(label, domain.Effect{Kind: domain.EffectOpenMail, To: to, Subject: subject, Body: body})
}

// Call adds an option that dials phone.
func (n *NodeBuilder) Call(label, phone string) *NodeBuilder {
	return n.Do(label, domain.Effect{Kind: domain.EffectDial, Phone: phone})
}

// Navigate adds an option that moves to an internal route.
func (n *NodeBuilder) Navigate(label, path string, query map[string]string) *NodeBuilder {
	return n.Do(label, domain.Effect{Kind: domain.EffectNavigate, Path: path, Query: query})
}

// Terminal drops every option, leaving a node the visitor can only leave by restarting.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Options = nil
	return n
}

// Add starts another node on the same builder.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	node := n.node
	node.Options = append([]domain.Option(nil), n.node.Options...)
	return node
}
