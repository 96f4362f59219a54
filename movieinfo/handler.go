package movieinfo

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/server"
	"github.com/kbukum/fluxkit/sse"
	"github.com/kbukum/fluxkit/validation"
)

// BasePath is the route group of the movie-info API.
const BasePath = "/v1/movieinfos"

// Handler serves the movie-info API.
type Handler struct {
	svc    *Service
	events *flux.Stream[Event]
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithEvents serves events on GET /v1/movieinfos/events. Every client runs
// its own subscription of events.
func WithEvents(events flux.Stream[Event]) HandlerOption {
	return func(h *Handler) { h.events = &events }
}

// NewHandler creates a Handler for svc.
func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group(BasePath)
	g.POST("", h.Add)
	g.GET("", h.GetAll)
	if h.events != nil {
		g.GET("/events", h.Events)
	}
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Add handles POST /v1/movieinfos.
func (h *Handler) Add(c *gin.Context) {
	m, ok := bindMovieInfo(c)
	if !ok {
		return
	}
	server.RespondTask(c, h.svc.Add(m), http.StatusCreated)
}

// GetAll handles GET /v1/movieinfos with an optional year filter.
func (h *Handler) GetAll(c *gin.Context) {
	raw, filtered := c.GetQuery("year")
	if !filtered {
		server.RespondStream(c, h.svc.GetAll())
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("year", "must be an integer"))
		return
	}
	server.RespondStream(c, h.svc.GetByYear(year))
}

// GetByID handles GET /v1/movieinfos/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	found := h.svc.GetByID(id).SwitchIfEmpty(flux.FailedTask[MovieInfo](apperrors.NotFound(Resource, id)))
	server.RespondTask(c, found, http.StatusOK)
}

// Update handles PUT /v1/movieinfos/:id. Unknown ids answer 404.
func (h *Handler) Update(c *gin.Context) {
	m, ok := bindMovieInfo(c)
	if !ok {
		return
	}
	server.RespondTask(c, h.svc.Update(c.Param("id"), m), http.StatusOK)
}

// Delete handles DELETE /v1/movieinfos/:id.
func (h *Handler) Delete(c *gin.Context) {
	server.RespondTask(c, h.svc.Delete(c.Param("id")), http.StatusNoContent)
}

// Events handles GET /v1/movieinfos/events.
func (h *Handler) Events(c *gin.Context) {
	server.RespondEvents(c, *h.events, sse.Options{Event: "movieinfo"})
}

func bindMovieInfo(c *gin.Context) (MovieInfo, bool) {
	var m MovieInfo
	if err := c.ShouldBindJSON(&m); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return m, false
	}
	if err := validation.Validate(m); err != nil {
		server.RespondWithError(c, err)
		return m, false
	}
	return m, true
}
