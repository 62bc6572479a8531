package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
)

// Well-known carousel names.
const (
	CarouselHero         = "hero"
	CarouselTestimonials = "testimonials"
	CarouselGallery      = "gallery"
)

//go:embed site.yaml
var defaultSite []byte

// Carousel is a resolved carousel definition.
type Carousel struct {
	Name   string
	Policy domain.AutoAdvancePolicy
	Slides []domain.Slide
}

// Site is the validated, immutable site configuration.
type Site struct {
	cfg       Config
	graph     *dialogue.Graph
	delays    dialogue.Delays
	carousels map[string]Carousel
	locator   *Locator
}

// Default returns the site bundled with the binary.
func Default() (*Site, error) {
	return Load(bytes.NewReader(defaultSite))
}

// DefaultYAML returns a copy of the bundled site definition, as a starting point for edits.
func DefaultYAML() []byte {
	return bytes.Clone(defaultSite)
}

// LoadFile reads a site definition from path.
func LoadFile(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open site config: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes and validates a site definition.
func Load(r io.Reader) (*Site, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode site config: %w", err)
	}
	return New(cfg)
}

// New validates cfg and builds the derived structures.
func New(cfg Config) (*Site, error) {
	s := &Site{cfg: cfg, carousels: map[string]Carousel{}}
	var errs []error

	nodes, err := buildNodes(cfg.Dialogue.Nodes)
	if err != nil {
		errs = append(errs, err)
	} else if s.graph, err = dialogue.NewGraph(cfg.Dialogue.Root, nodes); err != nil {
		errs = append(errs, err)
	}
	s.delays = buildDelays(cfg.Dialogue.Delays)

	for name, cc := range cfg.Carousels {
		slides := cc.Slides
		if name == CarouselTestimonials && len(slides) == 0 {
			slides = testimonialSlides(cfg.Testimonials)
		}
		if len(slides) == 0 && name != CarouselGallery {
			errs = append(errs, fmt.Errorf("carousel %q: %w", name, domain.ErrNoSlides))
		}
		for i, sl := range slides {
			if err := sl.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("carousel %q slide %d: %w", name, i, err))
			}
		}
		s.carousels[name] = Carousel{Name: name, Policy: cc.Policy(), Slides: slides}
	}
	if _, ok := s.carousels[CarouselHero]; !ok {
		errs = append(errs, fmt.Errorf("carousel %q not defined", CarouselHero))
	}

	s.cfg.Growth.Points = slices.Clone(cfg.Growth.Points)
	slices.SortFunc(s.cfg.Growth.Points, func(a, b GrowthPoint) int { return a.Year - b.Year })
	for i := 1; i < len(s.cfg.Growth.Points); i++ {
		if y := s.cfg.Growth.Points[i].Year; y == s.cfg.Growth.Points[i-1].Year {
			errs = append(errs, fmt.Errorf("growth: year %d listed twice", y))
		}
	}

	if len(cfg.ServiceCenters) == 0 {
		errs = append(errs, errors.New("no service centers defined"))
	} else {
		s.locator = NewLocator(cfg.ServiceCenters, cfg.MapCenter)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid site config: %w", err)
	}
	return s, nil
}

func buildNodes(cfgs []NodeConfig) ([]domain.Node, error) {
	var errs []error
	nodes := make([]domain.Node, 0, len(cfgs))
	for _, nc := range cfgs {
		n := domain.Node{ID: nc.ID, Text: nc.Text}
		for i, oc := range nc.Options {
			opt := domain.Option{Label: oc.Label, Next: oc.Next}
			if oc.Effect != nil {
				eff, err := decodeEffect(oc.Effect)
				if err != nil {
					errs = append(errs, fmt.Errorf("node %q option %d: %w", nc.ID, i, err))
					continue
				}
				opt.Effect = &eff
			}
			n.Options = append(n.Options, opt)
		}
		nodes = append(nodes, n)
	}
	return nodes, errors.Join(errs...)
}

func decodeEffect(raw map[string]any) (domain.Effect, error) {
	var eff domain.Effect
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &eff,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return eff, err
	}
	if err := dec.Decode(raw); err != nil {
		return eff, fmt.Errorf("decode effect: %w", err)
	}
	return eff, nil
}

func buildDelays(c DelayConfig) dialogue.Delays {
	d := dialogue.DefaultDelays()
	if c.Typing > 0 {
		d.Typing = c.Typing
	}
	if c.Transition > 0 {
		d.Transition = c.Transition
	}
	if c.Action > 0 {
		d.Action = c.Action
	}
	return d
}

func testimonialSlides(ts []domain.Testimonial) []domain.Slide {
	slides := make([]domain.Slide, 0, len(ts))
	for _, t := range ts {
		slides = append(slides, domain.Slide{
			Kind:  domain.SlideText,
			Title: t.Name,
			Body:  t.Quote,
			Src:   t.Image,
			Alt:   t.Role,
		})
	}
	return slides
}

// Company returns the business details.
func (s *Site) Company() Company { return s.cfg.Company }

// Founder returns the founder card.
func (s *Site) Founder() Founder { return s.cfg.Founder }

// About returns the company introduction.
func (s *Site) About() About { return s.cfg.About }

// Growth returns the growth chart, points sorted by year.
func (s *Site) Growth() Growth { return s.cfg.Growth }

// Contact returns the contact form links.
func (s *Site) Contact() Contact { return s.cfg.Contact }

// Testimonials returns the customer quotes in display order.
func (s *Site) Testimonials() []domain.Testimonial { return s.cfg.Testimonials }

// FAQs returns the questions in display order.
func (s *Site) FAQs() []domain.FAQ { return s.cfg.FAQs }

// Terms returns the terms page sections.
func (s *Site) Terms() []TermsSection { return s.cfg.Terms }

// Graph returns the chatbot graph.
func (s *Site) Graph() *dialogue.Graph { return s.graph }

// Delays returns the chatbot pacing.
func (s *Site) Delays() dialogue.Delays { return s.delays }

// Locator returns the service-center locator.
func (s *Site) Locator() *Locator { return s.locator }

// Carousel looks up a configured carousel by name.
func (s *Site) Carousel(name string) (Carousel, bool) {
	c, ok := s.carousels[name]
	return c, ok
}

// Gallery returns a manual carousel over a product's images, using the
// gallery policy when one is configured.
func (s *Site) Gallery(p domain.Product) Carousel {
	policy := domain.AutoAdvancePolicy{Enabled: false}.WithDefaults()
	if g, ok := s.carousels[CarouselGallery]; ok {
		policy = g.Policy
	}
	slides := make([]domain.Slide, 0, len(p.Images))
	for i, img := range p.Images {
		slides = append(slides, domain.Slide{
			Kind: domain.SlideImage,
			Src:  img,
			Alt:  fmt.Sprintf("%s - Image %d", p.Name, i+1),
		})
	}
	if len(slides) == 0 {
		slides = append(slides, domain.Slide{Kind: domain.SlideImage, Src: domain.PlaceholderImage, Alt: p.Name})
	}
	return Carousel{Name: CarouselGallery + ":" + p.ID, Policy: policy, Slides: slides}
}

// CarouselNames lists the configured carousels.
func (s *Site) CarouselNames() []string {
	names := make([]string, 0, len(s.carousels))
	for n := range s.carousels {
		names = append(names, n)
	}
	return names
}

// Phone returns the company phone without spaces, suitable for tel: links.
func (s *Site) Phone() string {
	return strings.ReplaceAll(s.cfg.Company.Phone, " ", "")
}
