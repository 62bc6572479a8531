package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/internal/presentation/web"
	"github.com/aretw0/vitrine/pkg/carousel"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/session"
	"github.com/aretw0/vitrine/pkg/site"
)

// Session kinds, used as log and metric labels.
const (
	KindChat     = "chat"
	KindCarousel = "carousel"
)

// Server serves the site pages and the per-visitor engine API.
type Server struct {
	site    *site.Site
	catalog ports.CatalogSource
	pages   *web.Renderer
	spec    *openapi3.T
	streams *StreamManager

	chats     *session.Manager[*chatSession]
	carousels *session.Manager[*carousel.Engine]

	clock       ports.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	metricsView http.Handler
	sessionOpts []session.Option
	version     string
	analyticsID string
	formURL     string
	baseURL     string
	publicDir   string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger used by handlers and engines.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock injects the time source shared by every engine and session manager.
func WithClock(c ports.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithMetrics wires engine hooks and session gauges into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsView = h
	}
}

// WithSessionOptions tunes both session managers (idle timeout, capacity).
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// WithVersion sets the build version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithAnalyticsID enables the analytics tag on every page.
func WithAnalyticsID(id string) Option {
	return func(s *Server) {
		s.analyticsID = id
	}
}

// WithFormURL overrides the order form linked from the header and the Book now buttons.
func WithFormURL(u string) Option {
	return func(s *Server) {
		s.formURL = u
	}
}

// WithBaseURL sets the absolute origin used in sitemap.xml.
func WithBaseURL(u string) Option {
	return func(s *Server) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPublicDir serves files from dir for paths no route matches (product images, videos).
func WithPublicDir(dir string) Option {
	return func(s *Server) {
		s.publicDir = dir
	}
}

// NewServer builds a server for the given site and catalog.
func NewServer(st *site.Site, catalog ports.CatalogSource, opts ...Option) (*Server, error) {
	s := &Server{
		site:    st,
		catalog: catalog,
		streams: NewStreamManager(),
		clock:   clock.New(),
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.formURL == "" {
		s.formURL = st.Contact().FormURL
	}

	pages, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	s.pages = pages

	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s.spec = spec

	s.chats = session.NewManager[*chatSession](s.managerOptions(KindChat)...)
	s.carousels = session.NewManager[*carousel.Engine](s.managerOptions(KindCarousel)...)
	return s, nil
}

func (s *Server) managerOptions(kind string) []session.Option {
	opts := []session.Option{
		session.WithClock(s.clock),
		session.WithLogger(s.logger),
	}
	opts = append(opts, s.sessionOpts...)
	return append(opts,
		session.WithKind(kind),
		session.WithEvictHook(func(id string) {
			s.streams.CloseSession(id)
			if s.metrics != nil {
				s.metrics.SessionClosed(kind)
			}
		}),
	)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.handleHome)
	r.Get("/products", s.handleProducts)
	r.Get("/service-centers", s.handleServiceCenters)
	r.Get("/faq", s.handleFAQ)
	r.Get("/contact", s.handleContact)
	r.Get("/terms", s.handleTerms)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.metricsView != nil {
		r.Handle("/metrics", s.metricsView)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/service-centers", s.findServiceCenter)

		r.Post("/chat/sessions", s.createChat)
		r.Get("/chat/sessions/{id}", s.getChat)
		r.Delete("/chat/sessions/{id}", s.closeChat)
		r.Post("/chat/sessions/{id}/select", s.selectOption)
		r.Get("/chat/sessions/{id}/events", s.chatEvents)

		r.Post("/carousels", s.createCarousel)
		r.Get("/carousels/{id}", s.getCarousel)
		r.Delete("/carousels/{id}", s.closeCarousel)
		r.Post("/carousels/{id}/commands", s.commandCarousel)
		r.Get("/carousels/{id}/events", s.carouselEvents)
	})

	r.NotFound(s.handleNotFound)
	return enableCORS(r)
}

// Close tears down every live session and ends open event streams.
func (s *Server) Close() error {
	errChats := s.chats.Close()
	errCarousels := s.carousels.Close()
	if errChats != nil {
		return errChats
	}
	return errCarousels
}

// Sessions reports the live chat and carousel session counts.
func (s *Server) Sessions() (chats, carousels int) {
	return s.chats.Len(), s.carousels.Len()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "vitrine",
		"version":     strings.TrimSpace(s.version),
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
