package catalog

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/aretw0/vitrine/pkg/domain"
)

func normalize(r record) domain.Product {
	p := domain.Product{
		ID:          idOf(r),
		Name:        r.Name,
		Description: r.Description,
		Price:       priceOf(r.Price),
		Images:      make([]string, 0, len(r.Images)),
	}
	for _, img := range r.Images {
		if img = strings.TrimSpace(img); img != "" {
			p.Images = append(p.Images, img)
		}
	}
	if len(p.Images) == 0 {
		p.Images = []string{domain.PlaceholderImage}
	}
	if r.Specs != nil {
		for pair := r.Specs.Oldest(); pair != nil; pair = pair.Next() {
			p.Specs = append(p.Specs, domain.SpecGroup{Category: pair.Key, Features: pair.Value})
		}
	}
	return p
}

// priceOf accepts JSON numbers only. Strings, null and garbage all price at zero.
func priceOf(raw json.RawMessage) decimal.Decimal {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return decimal.Zero
	}
	// json.Number also accepts quoted numbers; the catalog contract does not.
	if raw[0] == '"' {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func idOf(r record) string {
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil && s != "" {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(r.ID, &n); err == nil && n != "" {
		return n.String()
	}
	return Slug(r.Name)
}

// Slug lowercases name and joins its alphanumeric runs with hyphens.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
