package demo

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/server"
	"github.com/kbukum/fluxkit/sse"
)

// PipelinesPath is the route group listing and running the generator
// pipelines.
const PipelinesPath = "/v1/demo/pipelines"

// Handler serves the demo endpoints.
type Handler struct {
	gen       *Generator
	log       *logger.Logger
	interval  time.Duration
	pipelines map[string]func() flux.Stream[string]
}

// NewHandler creates a Handler. GET /stream ticks every interval.
func NewHandler(gen *Generator, interval time.Duration, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{gen: gen, log: log, interval: interval, pipelines: catalogue(gen)}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/flux", h.Flux)
	r.GET("/mono", h.Mono)
	r.GET("/stream", h.Stream)
	r.GET(PipelinesPath, h.ListPipelines)
	r.GET(PipelinesPath+"/:name", h.RunPipeline)
}

// Flux answers 1, 2, 3.
func (h *Handler) Flux(c *gin.Context) {
	server.RespondStream(c, flux.Just(1, 2, 3))
}

// Mono answers a single greeting.
func (h *Handler) Mono(c *gin.Context) {
	server.RespondTask(c, flux.Value("Hello World"), http.StatusOK)
}

// Stream sends an ever-increasing counter as Server-Sent Events until the
// client goes away.
func (h *Handler) Stream(c *gin.Context) {
	server.RespondEvents(c, flux.Interval(h.interval).Log(h.log, "stream"), sse.Options{Log: h.log})
}

// ListPipelines answers the sorted pipeline names.
func (h *Handler) ListPipelines(c *gin.Context) {
	server.RespondOK(c, h.Names())
}

// RunPipeline runs the named pipeline.
func (h *Handler) RunPipeline(c *gin.Context) {
	name := c.Param("name")
	p, ok := h.pipelines[name]
	if !ok {
		server.RespondWithError(c, apperrors.NotFound("pipeline", name))
		return
	}
	server.RespondStream(c, p())
}

// Names returns the pipeline names in order.
func (h *Handler) Names() []string {
	out := make([]string, 0, len(h.pipelines))
	for name := range h.pipelines {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func catalogue(g *Generator) map[string]func() flux.Stream[string] {
	return map[string]func() flux.Stream[string]{
		"names":                   g.Names,
		"names-upper":             g.NamesUpper,
		"names-upper-filter":      func() flux.Stream[string] { return g.NamesUpperLongerThan(3) },
		"names-flatmap":           g.NamesFlatMap,
		"names-transform":         g.NamesTransform,
		"names-transform-default": func() flux.Stream[string] { return g.NamesTransformDefault(8) },
		"names-transform-switch":  func() flux.Stream[string] { return g.NamesTransformSwitchIfEmpty(8) },
		"names-flatmap-async":     g.NamesFlatMapAsync,
		"names-concatmap-async":   g.NamesConcatMapAsync,
		"names-immutable":         g.NamesImmutable,
		"name":                    func() flux.Stream[string] { return g.Name().Stream() },
		"name-letters":            func() flux.Stream[string] { return flux.Map(g.NameLetters().Stream(), joinLetters) },
		"name-letters-many":       g.NameLettersMany,
		"concat":                  g.Concat,
		"concat-with":             g.ConcatWith,
		"merge":                   g.Merge,
		"merge-with":              g.MergeWith,
		"merge-with-task":         g.MergeWithTask,
		"merge-sequential":        g.MergeSequential,
		"zip":                     g.Zip,
		"zip-with":                g.ZipWith,
		"zip-with-task":           func() flux.Stream[string] { return g.ZipWithTask().Stream() },
		"zip-four":                g.ZipFour,
	}
}

func joinLetters(letters []string) string { return strings.Join(letters, ",") }
