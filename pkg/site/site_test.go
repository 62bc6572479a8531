package site_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/site"
)

func TestDefault(t *testing.T) {
	s, err := site.Default()
	require.NoError(t, err)

	assert.Equal(t, "Ali Enterprises", s.Company().Name)
	assert.Len(t, s.Testimonials(), 5)
	assert.Len(t, s.FAQs(), 5)
	assert.Len(t, s.Locator().Centers(), 6)
	assert.NotEmpty(t, s.Contact().FormURL)

	hero, ok := s.Carousel(site.CarouselHero)
	require.True(t, ok)
	require.Len(t, hero.Slides, 4)
	assert.Equal(t, domain.SlideVideo, hero.Slides[0].Kind)
	assert.Equal(t, "https://player.vimeo.com/video/1061541347?h=0cc9da38b8&loop=1&muted=1", hero.Slides[0].EmbedURL())
	assert.Equal(t, 10*time.Second, hero.Policy.Interval)
	assert.Equal(t, 18*time.Second, hero.Policy.ResumeDelay)
	assert.True(t, hero.Policy.Enabled)

	testimonials, ok := s.Carousel(site.CarouselTestimonials)
	require.True(t, ok)
	assert.Len(t, testimonials.Slides, 5, "slides derived from the testimonial list")
	assert.Equal(t, 5*time.Second, testimonials.Policy.Interval)

	assert.Equal(t, dialogue.DefaultDelays(), s.Delays())
	assert.Empty(t, s.Graph().Lint(), "bundled chatbot graph is fully connected")

	assert.Equal(t, "About Ali Enterprises", s.About().Title)
	assert.NotEmpty(t, s.About().Mission)
	assert.NotEmpty(t, s.About().Vision)
	assert.NotEmpty(t, s.About().WhyChooseUs)
	assert.Equal(t, []site.GrowthPoint{
		{Year: 2020, Value: 5},
		{Year: 2021, Value: 10},
		{Year: 2022, Value: 12},
		{Year: 2023, Value: 18},
		{Year: 2024, Value: 22},
	}, s.Growth().Points)
	assert.Equal(t, "+919756300040", s.Phone())
}

func TestLoad_GrowthPoints(t *testing.T) {
	const rest = `
carousels: {hero: {slides: [{kind: text, title: x}]}}
dialogue: {nodes: [{id: root, text: hi}]}
service_centers: [{city: A, coordinates: {lat: 1, lng: 2}}]
`
	s, err := site.Load(strings.NewReader("growth: {points: [{year: 2022, value: 3}, {year: 2020, value: 1}]}" + rest))
	require.NoError(t, err)
	assert.Equal(t, []site.GrowthPoint{{Year: 2020, Value: 1}, {Year: 2022, Value: 3}}, s.Growth().Points)

	_, err = site.Load(strings.NewReader("growth: {points: [{year: 2020, value: 1}, {year: 2020, value: 2}]}" + rest))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year 2020 listed twice")
}

func TestDefault_ChatbotEffects(t *testing.T) {
	s, err := site.Default()
	require.NoError(t, err)
	g := s.Graph()

	tests := []struct {
		node  string
		index int
		href  string
	}{
		{"buy-process", 0, "https://forms.gle/LQwMAdZdsjA54Ytn8"},
		{"machine-models", 1, "/products?model=2"},
		{"specific-parts", 0, "https://wa.me/919756300040?text=Hello%2C%20I%20need%20assistance%20with%20motor%20parts."},
		{"specific-parts", 1, "sms:+919756300040?body=I%20need%20help%20with%20mold%20parts."},
		{"part-help", 1, "/"},
	}
	for _, tt := range tests {
		out, err := dialogue.Resolve(g, tt.node, tt.index)
		require.NoError(t, err)
		require.True(t, out.IsEffect(), "%s/%d", tt.node, tt.index)
		assert.Equal(t, tt.href, out.Effect.Href())
	}

	out, err := dialogue.Resolve(g, "specific-parts", 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Effect.Href(), "mailto:alienterprises54@yahoo.com?subject=Conveyor%20Parts%20Inquiry&body=Hello%2C%0A%0A"))
}

// Root has four options; choosing "Buy a machine" shows buy-process with two
// options within the transition plus typing delay.
func TestDefault_BuyMachineWalkthrough(t *testing.T) {
	s, err := site.Default()
	require.NoError(t, err)

	c := clock.NewManual(time.Unix(0, 0))
	e := dialogue.New(s.Graph(), dialogue.WithClock(c), dialogue.WithDelays(s.Delays()))
	defer e.Close()

	require.NoError(t, e.Start())
	c.Advance(800 * time.Millisecond)
	require.Len(t, e.Current().Options, 4)

	require.NoError(t, e.Select(context.Background(), 2))
	c.Advance(1800 * time.Millisecond)

	snap := e.Snapshot()
	assert.Equal(t, "buy-process", snap.Node.ID)
	assert.Equal(t, []string{"Buy online", "Get store details"}, snap.Node.Options)
	assert.False(t, snap.Typing)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown field",
			doc:     "bogus: 1\n",
			wantErr: "field bogus not found",
		},
		{
			name: "missing hero",
			doc: `
dialogue: {nodes: [{id: root, text: hi}]}
service_centers: [{city: A, coordinates: {lat: 1, lng: 2}}]
`,
			wantErr: `carousel "hero" not defined`,
		},
		{
			name: "bad slide",
			doc: `
carousels: {hero: {slides: [{kind: image}]}}
dialogue: {nodes: [{id: root, text: hi}]}
service_centers: [{city: A, coordinates: {lat: 1, lng: 2}}]
`,
			wantErr: "image slide missing src",
		},
		{
			name: "unknown effect param",
			doc: `
carousels: {hero: {slides: [{kind: text, title: x}]}}
dialogue:
  nodes:
    - id: root
      text: hi
      options: [{label: go, effect: {kind: dial, phone: "1", colour: red}}]
service_centers: [{city: A, coordinates: {lat: 1, lng: 2}}]
`,
			wantErr: "colour",
		},
		{
			name: "no service centers",
			doc: `
carousels: {hero: {slides: [{kind: text, title: x}]}}
dialogue: {nodes: [{id: root, text: hi}]}
`,
			wantErr: "no service centers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := site.Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EmptyCarousel(t *testing.T) {
	const rest = `
dialogue: {nodes: [{id: root, text: hi}]}
service_centers: [{city: A, coordinates: {lat: 1, lng: 2}}]
`
	tests := []struct {
		name      string
		carousels string
		wantErr   string
	}{
		{
			name:      "hero without slides",
			carousels: "carousels: {hero: {slides: []}}",
			wantErr:   `carousel "hero"`,
		},
		{
			name:      "testimonials without quotes",
			carousels: "carousels: {hero: {slides: [{kind: text, title: x}]}, testimonials: {interval: 5s}}",
			wantErr:   `carousel "testimonials"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := site.Load(strings.NewReader(tt.carousels + rest))
			require.ErrorIs(t, err, domain.ErrNoSlides)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	s, err := site.Load(strings.NewReader("carousels: {hero: {slides: [{kind: text, title: x}]}, gallery: {auto_advance: false}}" + rest))
	require.NoError(t, err, "the gallery entry only carries a policy")
	_, ok := s.Carousel(site.CarouselGallery)
	assert.True(t, ok)
}

func TestGallery(t *testing.T) {
	s, err := site.Default()
	require.NoError(t, err)

	g := s.Gallery(domain.Product{ID: "p", Name: "Press", Images: []string{"/a.jpg", "/b.jpg"}})
	assert.False(t, g.Policy.Enabled, "galleries are manual only")
	require.Len(t, g.Slides, 2)
	assert.Equal(t, "Press - Image 2", g.Slides[1].Alt)

	empty := s.Gallery(domain.Product{ID: "q", Name: "Bare"})
	require.Len(t, empty.Slides, 1)
	assert.Equal(t, domain.PlaceholderImage, empty.Slides[0].Src)
}

func TestLocator(t *testing.T) {
	centers := []domain.ServiceCenter{
		{City: "Prayagraj", Coordinates: domain.LatLng{Lat: 25.4358, Lng: 81.8463}},
		{City: "Sasaram", Coordinates: domain.LatLng{Lat: 25.04, Lng: 84.18}},
	}
	l := site.NewLocator(centers, nil)

	def := l.DefaultView()
	assert.Equal(t, 4, def.Zoom)
	assert.Equal(t, centers[0].Coordinates, def.Center)

	c, view, ok := l.Select(" sasaram ")
	require.True(t, ok)
	assert.Equal(t, "Sasaram", c.City)
	assert.Equal(t, domain.MapView{Center: centers[1].Coordinates, Zoom: 10}, view)

	_, view, ok = l.Select("Atlantis")
	assert.False(t, ok)
	assert.Equal(t, def, view)

	india := domain.LatLng{Lat: 22.5937, Lng: 78.9629}
	assert.Equal(t, india, site.NewLocator(centers, &india).DefaultView().Center)
}
