package domain

import "github.com/shopspring/decimal"

// PlaceholderImage is used when a product has no images.
const PlaceholderImage = "/default-image.jpg"

// SpecGroup is one category of product features, in document order.
type SpecGroup struct {
	Category string   `json:"category"`
	Features []string `json:"features"`
}

// Product is a normalized catalog record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Specs       []SpecGroup     `json:"specs"`
}

// PrimaryImage returns the first image, which is always present after normalization.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return PlaceholderImage
	}
	return p.Images[0]
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// ServiceCenter is a location shown on the locator map.
type ServiceCenter struct {
	City        string `json:"city" yaml:"city"`
	Address     string `json:"address" yaml:"address"`
	Coordinates LatLng `json:"coordinates" yaml:"coordinates"`
}

// MapView is the viewport the map should display.
type MapView struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Quote string `json:"quote" yaml:"quote"`
	Image string `json:"image" yaml:"image"`
}

// FAQ is a question with its answer.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}
