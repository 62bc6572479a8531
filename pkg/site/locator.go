package site

import (
	"strings"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Map zoom levels.
const (
	OverviewZoom = 4
	SelectedZoom = 10
)

// Locator resolves service-center selections into map viewports.
type Locator struct {
	centers []domain.ServiceCenter
	center  domain.LatLng
}

// NewLocator creates a locator. When center is nil the overview is centred on the first service center.
func NewLocator(centers []domain.ServiceCenter, center *domain.LatLng) *Locator {
	l := &Locator{centers: centers}
	switch {
	case center != nil:
		l.center = *center
	case len(centers) > 0:
		l.center = centers[0].Coordinates
	}
	return l
}

// Centers returns the service centers in display order.
func (l *Locator) Centers() []domain.ServiceCenter {
	return l.centers
}

// DefaultView is the overview shown before any selection.
func (l *Locator) DefaultView() domain.MapView {
	return domain.MapView{Center: l.center, Zoom: OverviewZoom}
}

// Select finds a center by city name (case-insensitive) and returns the viewport focused on it.
// Unknown cities yield the default view and false.
func (l *Locator) Select(city string) (domain.ServiceCenter, domain.MapView, bool) {
	city = strings.TrimSpace(city)
	for _, c := range l.centers {
		if strings.EqualFold(c.City, city) {
			return c, domain.MapView{Center: c.Coordinates, Zoom: SelectedZoom}, true
		}
	}
	return domain.ServiceCenter{}, l.DefaultView(), false
}
