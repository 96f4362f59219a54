// Package sse writes a flux.Stream to an HTTP response as Server-Sent
// Events.
//
// Every value becomes one data frame holding its JSON encoding. A failed
// stream ends with a frame of type "error" carrying the error body, and a
// client disconnect cancels the stream.
//
//	if sse.Accepts(c.Request) {
//	    _ = sse.Write(c.Writer, c.Request, movies, sse.Options{})
//	    return
//	}
package sse
