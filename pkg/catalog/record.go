package catalog

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// record is the wire shape of one catalog entry before normalization.
type record struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Images      []string        `json:"images"`
	// Specs keeps the category order of the document.
	Specs *orderedmap.OrderedMap[string, []string] `json:"specs"`
}
