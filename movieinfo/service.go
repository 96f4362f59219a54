package movieinfo

import (
	"context"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/observability"
	"github.com/kbukum/fluxkit/store"
)

// Service implements the movie-info operations over an AsyncStore. Every
// operation is lazy: nothing touches the store until the returned task or
// stream runs.
type Service struct {
	store   store.AsyncStore[MovieInfo]
	events  EventPublisher
	metrics *observability.Metrics
	log     *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher publishes change events through p.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithMetrics records store calls on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a Service over st.
func NewService(st store.AsyncStore[MovieInfo], opts ...Option) *Service {
	s := &Service{
		store:  st,
		events: NopPublisher{},
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("movieinfo")
	return s
}

// Add stores a new movie info. The store assigns an ID when m has none.
func (s *Service) Add(m MovieInfo) flux.Task[MovieInfo] {
	saved := observability.TraceTask(s.store.Save(m), "movieinfo.save", s.metrics)
	return s.notify(saved, EventCreated)
}

// GetAll streams every stored movie info.
func (s *Service) GetAll() flux.Stream[MovieInfo] {
	return observability.TraceStream(s.store.FindAll(), "movieinfo.findAll", s.metrics)
}

// GetByYear streams the movie infos released in year.
func (s *Service) GetByYear(year int) flux.Stream[MovieInfo] {
	return s.GetAll().Filter(func(m MovieInfo) bool { return m.Year == year })
}

// GetByID looks up one movie info. The task completes empty when id is
// unknown.
func (s *Service) GetByID(id string) flux.Task[MovieInfo] {
	return observability.TraceTask(s.store.FindByID(id), "movieinfo.findById", s.metrics)
}

// Update replaces the fields of the movie info stored under id with those
// of m. The ID in m is ignored. The task completes empty when id is
// unknown.
func (s *Service) Update(id string, m MovieInfo) flux.Task[MovieInfo] {
	updated := flux.FlatMapTask(s.GetByID(id), func(existing MovieInfo) flux.Task[MovieInfo] {
		existing.Name = m.Name
		existing.Year = m.Year
		existing.Cast = m.Cast
		existing.ReleaseDate = m.ReleaseDate
		return observability.TraceTask(s.store.Save(existing), "movieinfo.save", s.metrics)
	})
	return s.notify(updated, EventUpdated)
}

// Delete removes the movie info stored under id. Unknown ids are not an
// error.
func (s *Service) Delete(id string) flux.Task[flux.Unit] {
	deleted := observability.TraceTask(s.store.DeleteByID(id), "movieinfo.deleteById", s.metrics)
	return flux.NewOptionalTask(func(ctx context.Context) (flux.Unit, bool, error) {
		if _, _, err := deleted.Block(ctx); err != nil {
			return flux.Unit{}, false, err
		}
		s.publish(ctx, EventDeleted, MovieInfo{ID: id})
		return flux.Unit{}, false, nil
	})
}

// notify publishes eventType for the value of t once it succeeds.
func (s *Service) notify(t flux.Task[MovieInfo], eventType string) flux.Task[MovieInfo] {
	return flux.FlatMapTask(t, func(m MovieInfo) flux.Task[MovieInfo] {
		return flux.NewTask(func(ctx context.Context) (MovieInfo, error) {
			s.publish(ctx, eventType, m)
			return m, nil
		})
	})
}

// publish is best-effort: the store has already committed, so a failed
// publish is logged and the operation still succeeds.
func (s *Service) publish(ctx context.Context, eventType string, m MovieInfo) {
	if err := s.events.Publish(ctx, eventType, m.ID, m); err != nil {
		s.log.WithContext(ctx).Warn("event publish failed", logger.ErrorFields("publish", err), logger.Fields(
			"event_type", eventType,
			"movie_info_id", m.ID,
		))
	}
}
