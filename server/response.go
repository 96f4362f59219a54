package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/sse"
)

// RespondWithError writes err as an error body. AppErrors carry their own
// status; context errors become timeouts or cancellations; anything else
// is a 500. Nothing is written once the client has gone away.
func RespondWithError(c *gin.Context, err error) {
	if c.Request.Context().Err() != nil && errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	appErr := apperrors.From(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondNoContent sends a 204 with no body.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondTask runs t with the request context. Its value is written with
// status; an empty task is a 404. With http.StatusNoContent the value, if
// any, is discarded and completion alone answers 204.
func RespondTask[T any](c *gin.Context, t flux.Task[T], status int) {
	v, ok, err := t.Block(c.Request.Context())
	switch {
	case err != nil:
		RespondWithError(c, err)
	case status == http.StatusNoContent:
		RespondNoContent(c)
	case !ok:
		c.AbortWithStatus(http.StatusNotFound)
	default:
		c.JSON(status, v)
	}
}

// RespondStream runs s with the request context. Clients accepting
// text/event-stream get one event per value; everyone else gets a JSON
// array once the stream completes.
func RespondStream[T any](c *gin.Context, s flux.Stream[T]) {
	if sse.Accepts(c.Request) {
		RespondEvents(c, s, sse.Options{})
		return
	}

	values, err := s.Collect(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if values == nil {
		values = []T{}
	}
	c.JSON(http.StatusOK, values)
}

// RespondEvents writes s as Server-Sent Events regardless of the Accept
// header.
func RespondEvents[T any](c *gin.Context, s flux.Stream[T], opts sse.Options) {
	if opts.Log == nil {
		opts.Log = logger.GetGlobalLogger()
	}
	if err := sse.Write(c.Writer, c.Request, s, opts); err != nil {
		_ = c.Error(err)
	}
}
