package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/vitrine/pkg/carousel"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/site"
)

// CarouselView is the JSON form of a carousel session.
type CarouselView struct {
	ID       string                  `json:"id"`
	Snapshot domain.CarouselSnapshot `json:"snapshot"`
	Slides   []domain.Slide          `json:"slides"`
}

type createCarouselRequest struct {
	Carousel string `json:"carousel"`
	Product  string `json:"product"`
}

type carouselCommand struct {
	Action  string  `json:"action"`
	Index   *int    `json:"index"`
	StartX  float64 `json:"start_x"`
	EndX    float64 `json:"end_x"`
	Key     string  `json:"key"`
	Playing *bool   `json:"playing"`
}

func (s *Server) carouselHooks() domain.CarouselHooks {
	hooks := []domain.CarouselHooks{
		observability.LogCarouselHooks(s.logger),
		{
			OnChange: func(_ context.Context, e *domain.SlideEvent) {
				s.streams.BroadcastJSON(e.SessionID, string(e.Type), e)
			},
		},
	}
	if s.metrics != nil {
		hooks = append(hooks, s.metrics.CarouselHooks())
	}
	return domain.MergeCarouselHooks(hooks...)
}

// resolveCarousel finds a configured carousel, or builds a product gallery.
func (s *Server) resolveCarousel(ctx context.Context, name, product string) (site.Carousel, error) {
	if name != site.CarouselGallery {
		c, ok := s.site.Carousel(name)
		if !ok {
			return site.Carousel{}, fmt.Errorf("%w: %q", domain.ErrUnknownCarousel, name)
		}
		return c, nil
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return site.Carousel{}, err
	}
	for _, p := range products {
		if p.ID == product {
			return s.site.Gallery(p), nil
		}
	}
	return site.Carousel{}, fmt.Errorf("%w: no product %q", domain.ErrUnknownCarousel, product)
}

// NewCarousel opens a carousel session and starts its auto-advance timer.
func (s *Server) NewCarousel(ctx context.Context, name, product string) (string, error) {
	c, err := s.resolveCarousel(ctx, name, product)
	if err != nil {
		return "", err
	}
	id, eng, err := s.carousels.Create(func(id string) (*carousel.Engine, error) {
		return carousel.New(c.Slides,
			carousel.WithName(c.Name),
			carousel.WithPolicy(c.Policy),
			carousel.WithClock(s.clock),
			carousel.WithHooks(s.carouselHooks()),
			carousel.WithLogger(s.logger),
			carousel.WithSessionID(id),
		)
	})
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.SessionOpened(KindCarousel)
	}
	eng.Start()
	return id, nil
}

func (s *Server) createCarousel(w http.ResponseWriter, r *http.Request) {
	var req createCarouselRequest
	if err := s.decodeBody(r, "CreateCarouselRequest", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.NewCarousel(r.Context(), req.Carousel, req.Product)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eng, err := s.carousels.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, CarouselView{ID: id, Snapshot: eng.Snapshot(), Slides: eng.Slides()})
}

func (s *Server) getCarousel(w http.ResponseWriter, r *http.Request) {
	eng, err := s.carousels.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, eng.Snapshot())
}

func (s *Server) commandCarousel(w http.ResponseWriter, r *http.Request) {
	var cmd carouselCommand
	if err := s.decodeBody(r, "CarouselCommand", &cmd); err != nil {
		s.writeError(w, r, err)
		return
	}
	var snap domain.CarouselSnapshot
	err := s.carousels.WithLock(chi.URLParam(r, "id"), func(eng *carousel.Engine) error {
		if err := applyCommand(eng, cmd); err != nil {
			return err
		}
		snap = eng.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, snap)
}

func applyCommand(eng *carousel.Engine, cmd carouselCommand) error {
	switch cmd.Action {
	case "next":
		eng.Next()
	case "prev":
		eng.Prev()
	case "goto":
		if cmd.Index == nil {
			return fmt.Errorf("%w: goto requires index", errBadRequest)
		}
		eng.GoTo(*cmd.Index)
	case "swipe":
		eng.Swipe(cmd.StartX, cmd.EndX)
	case "key":
		eng.Key(cmd.Key)
	case "media":
		if cmd.Playing == nil {
			return fmt.Errorf("%w: media requires playing", errBadRequest)
		}
		eng.SetMediaPlaying(*cmd.Playing)
	case "settle":
		eng.Settle()
	default:
		return fmt.Errorf("%w: unknown action %q", errBadRequest, cmd.Action)
	}
	return nil
}

func (s *Server) closeCarousel(w http.ResponseWriter, r *http.Request) {
	if err := s.carousels.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) carouselEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eng, err := s.carousels.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveStream(w, r, id, func() any { return eng.Snapshot() })
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
