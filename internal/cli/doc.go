// Package cli holds the interactive terminal front-ends used by cmd/vitrine.
package cli
