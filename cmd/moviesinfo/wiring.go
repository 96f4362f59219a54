package main

import (
	"context"
	"fmt"

	"github.com/kbukum/fluxkit/bootstrap"
	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/database"
	"github.com/kbukum/fluxkit/demo"
	"github.com/kbukum/fluxkit/kafka"
	"github.com/kbukum/fluxkit/mongo"
	"github.com/kbukum/fluxkit/movieinfo"
	"github.com/kbukum/fluxkit/observability"
	"github.com/kbukum/fluxkit/redis"
	"github.com/kbukum/fluxkit/server"
	"github.com/kbukum/fluxkit/store"
)

// infra holds the infrastructure components, started before the
// business layer is wired.
type infra struct {
	db            *database.Component
	redis         *redis.Component
	mongo         *mongo.Component
	kafka         *kafka.Component
	observability *observability.Component
}

func registerInfra(app *bootstrap.App[*Config]) (*infra, error) {
	cfg := app.Cfg
	in := &infra{
		db: database.NewComponent(cfg.Database, app.Logger).
			WithMigrations(movieinfo.Migrations, "migrations"),
		redis:         redis.NewComponent(cfg.Redis, app.Logger),
		mongo:         mongo.NewComponent(cfg.Mongo, app.Logger),
		kafka:         kafka.NewComponent(cfg.Kafka, app.Logger),
		observability: observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment),
	}
	for _, c := range []component.Component{in.observability, in.db, in.redis, in.mongo, in.kafka} {
		if err := app.RegisterComponent(c); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// newStore builds the movie-info store for the configured driver over the
// started infrastructure.
func (in *infra) newStore(driver store.Driver) (store.AsyncStore[movieinfo.MovieInfo], error) {
	switch driver {
	case store.DriverMemory:
		return store.NewMemory(movieinfo.Identity), nil
	case store.DriverSQLite:
		if in.db.DB() == nil {
			return nil, fmt.Errorf("sqlite store: database not started")
		}
		return database.NewStore(in.db.DB(), movieinfo.Identity, movieinfo.Resource,
			database.WithKeyColumn(movieinfo.KeyColumn)), nil
	case store.DriverRedis:
		if in.redis.Client() == nil {
			return nil, fmt.Errorf("redis store: redis not started")
		}
		return redis.NewStore(in.redis.Client(), movieinfo.Collection, movieinfo.Identity), nil
	case store.DriverMongo:
		if in.mongo.Client() == nil {
			return nil, fmt.Errorf("mongo store: mongo not started")
		}
		return mongo.NewStore(in.mongo.Client().Collection(movieinfo.Collection), movieinfo.Identity), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// configure builds the service over the started infrastructure, mounts
// the routes and registers the HTTP server.
func configure(in *infra) func(context.Context, *bootstrap.App[*Config]) error {
	return func(_ context.Context, app *bootstrap.App[*Config]) error {
		cfg := app.Cfg
		st, err := in.newStore(cfg.Store.Driver)
		if err != nil {
			return err
		}

		opts := []movieinfo.Option{
			movieinfo.WithLogger(app.Logger),
			movieinfo.WithMetrics(in.observability.Metrics()),
		}
		var handlerOpts []movieinfo.HandlerOption
		if p := in.kafka.Producer(); p != nil {
			opts = append(opts, movieinfo.WithPublisher(p))
		}
		if c := in.kafka.Consumer(); c != nil {
			handlerOpts = append(handlerOpts, movieinfo.WithEvents(movieinfo.EventsFrom(c.Events())))
			app.Summary.TrackStream("movieinfo events", "kafka:"+cfg.Kafka.Topic, movieinfo.BasePath+"/events")
		}
		svc := movieinfo.NewService(st, opts...)

		srv := server.New(cfg.Server, app.Logger)
		srv.RegisterDefaultEndpoints(cfg.Name, cfg.Version, app.Components.HealthAll)
		api := srv.Engine()
		movieinfo.NewHandler(svc, handlerOpts...).Register(api)
		if cfg.Demo.Enabled {
			gen := demo.NewGenerator(app.Logger, cfg.Demo.Delay())
			demo.NewHandler(gen, cfg.Demo.Interval(), app.Logger).Register(api)
		}

		for _, r := range srv.Routes() {
			if !r.System {
				app.Summary.TrackRoute(r.Method, r.Path, r.Handler)
			}
		}
		return app.RegisterComponent(server.NewComponent(srv))
	}
}
