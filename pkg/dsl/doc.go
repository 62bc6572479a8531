/*
Package dsl provides a fluent builder for chatbot scripts.

It is an alternative to the YAML site definition for scripts generated in code
or assembled in tests.

Example usage:

	b := dsl.New()

	b.Add("root").
		Say("Hi! How can I assist you today?").
		Go("Buy a machine", "buy-process").
		Call("Talk to us", "+919876543210")

	b.Add("buy-process").
		Say("Fill in the order form and we will call you back.").
		Open("Buy online", "https://forms.example/order").
		Go("Back", "root")

	graph, err := b.Build()
*/
package dsl
