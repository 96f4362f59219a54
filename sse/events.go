package sse

// Frame types written by Write.
const (
	// EventTypeMessage is the default type of value frames.
	EventTypeMessage = "message"

	// EventTypeError marks the frame sent when the stream fails.
	EventTypeError = "error"

	// ContentType is the media type of an event stream.
	ContentType = "text/event-stream"
)
