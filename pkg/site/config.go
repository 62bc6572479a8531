package site

import (
	"time"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Company identifies the business behind the site.
type Company struct {
	Name     string `yaml:"name"`
	Tagline  string `yaml:"tagline"`
	BaseURL  string `yaml:"base_url"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	WhatsApp string `yaml:"whatsapp"`
	Address  string `yaml:"address"`
	YouTube  string `yaml:"youtube"`
}

// Founder is the card shown beside the hero carousel.
type Founder struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Image   string `yaml:"image"`
	Address string `yaml:"address"`
}

// About is the company introduction on the landing page.
type About struct {
	Title       string `yaml:"title"`
	Intro       string `yaml:"intro"`
	Mission     string `yaml:"mission"`
	Vision      string `yaml:"vision"`
	WhyChooseUs string `yaml:"why_choose_us"`
}

// GrowthPoint is one year of the growth chart.
type GrowthPoint struct {
	Year  int     `yaml:"year"`
	Value float64 `yaml:"value"`
}

// Growth is the year-on-year chart. Points are kept in year order.
type Growth struct {
	Title  string        `yaml:"title"`
	Points []GrowthPoint `yaml:"points"`
}

// Contact holds the external form links.
type Contact struct {
	FormURL  string `yaml:"form_url"`
	EmbedURL string `yaml:"embed_url"`
}

// TermsSection is one heading of the terms page.
type TermsSection struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// Config is the YAML document shape.
type Config struct {
	Company        Company                   `yaml:"company"`
	Founder        Founder                   `yaml:"founder"`
	About          About                     `yaml:"about"`
	Growth         Growth                    `yaml:"growth"`
	Carousels      map[string]CarouselConfig `yaml:"carousels"`
	Dialogue       DialogueConfig            `yaml:"dialogue"`
	Testimonials   []domain.Testimonial      `yaml:"testimonials"`
	FAQs           []domain.FAQ              `yaml:"faqs"`
	ServiceCenters []domain.ServiceCenter    `yaml:"service_centers"`
	MapCenter      *domain.LatLng            `yaml:"map_center"`
	Contact        Contact                   `yaml:"contact"`
	Terms          []TermsSection            `yaml:"terms"`
}

// CarouselConfig is a named carousel. Zero durations fall back to the hero defaults.
type CarouselConfig struct {
	AutoAdvance        *bool          `yaml:"auto_advance"`
	Interval           time.Duration  `yaml:"interval"`
	ResumeDelay        time.Duration  `yaml:"resume_delay"`
	TransitionDuration time.Duration  `yaml:"transition_duration"`
	SwipeThreshold     float64        `yaml:"swipe_threshold"`
	Slides             []domain.Slide `yaml:"slides"`
}

// Policy converts the YAML fields into an auto-advance policy.
func (c CarouselConfig) Policy() domain.AutoAdvancePolicy {
	p := domain.AutoAdvancePolicy{
		Enabled:            c.AutoAdvance == nil || *c.AutoAdvance,
		Interval:           c.Interval,
		ResumeDelay:        c.ResumeDelay,
		TransitionDuration: c.TransitionDuration,
		SwipeThreshold:     c.SwipeThreshold,
	}
	return p.WithDefaults()
}

// DialogueConfig is the chatbot graph and its pacing.
type DialogueConfig struct {
	Root   string       `yaml:"root"`
	Delays DelayConfig  `yaml:"delays"`
	Nodes  []NodeConfig `yaml:"nodes"`
}

// DelayConfig overrides individual dialogue delays.
type DelayConfig struct {
	Typing     time.Duration `yaml:"typing"`
	Transition time.Duration `yaml:"transition"`
	Action     time.Duration `yaml:"action"`
}

// NodeConfig is one dialogue node as written in YAML.
type NodeConfig struct {
	ID      string         `yaml:"id"`
	Text    string         `yaml:"text"`
	Options []OptionConfig `yaml:"options"`
}

// OptionConfig keeps the effect loosely typed; its parameters depend on the kind
// and are decoded with mapstructure.
type OptionConfig struct {
	Label  string         `yaml:"label"`
	Next   string         `yaml:"next"`
	Effect map[string]any `yaml:"effect"`
}
