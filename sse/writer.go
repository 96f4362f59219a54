package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
)

const defaultKeepAlive = 15 * time.Second

// Options tunes Write.
type Options struct {
	// Event names the value frames. Empty frames are plain "message" events.
	Event string
	// KeepAlive is the interval of comment frames sent while the stream is
	// idle. Zero uses 15s; negative disables them.
	KeepAlive time.Duration
	// Log receives connection events. Nil uses the global logger.
	Log *logger.Logger
}

// Accepts reports whether the request asked for an event stream.
func Accepts(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == ContentType {
			return true
		}
	}
	return false
}

// Write streams s to w, one frame per value, until s terminates or the
// client goes away. The returned error is the stream's failure; a client
// disconnect is not an error.
func Write[T any](w http.ResponseWriter, r *http.Request, s flux.Stream[T], opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("sse").WithContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return fmt.Errorf("sse: response writer does not support flushing")
	}

	// Event streams outlive the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("Could not clear write deadline", logger.Fields("error", err.Error()))
	}

	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	fw := &frameWriter{w: w, flusher: flusher}

	var wg sync.WaitGroup
	if interval := keepAliveInterval(opts.KeepAlive); interval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fw.keepAlive(ctx, interval)
		}()
	}

	sent := 0
	err := s.Run(ctx, func(v T) error {
		data, err := json.Marshal(v)
		if err != nil {
			return apperrors.Internal(err)
		}
		sent++
		return fw.frame(opts.Event, data)
	})
	cancel()
	wg.Wait()

	if r.Context().Err() != nil {
		log.Debug("Client disconnected", logger.Fields(logger.FieldCount, sent))
		return nil
	}
	if err != nil {
		body, _ := json.Marshal(apperrors.From(err).ToResponse())
		_ = fw.frame(EventTypeError, body)
		log.WithError(err).Warn("Event stream failed", logger.Fields(logger.FieldCount, sent))
		return err
	}
	log.Debug("Event stream completed", logger.Fields(logger.FieldCount, sent))
	return nil
}

func keepAliveInterval(d time.Duration) time.Duration {
	if d == 0 {
		return defaultKeepAlive
	}
	return d
}

// frameWriter serializes frames from the stream and the keep-alive loop.
type frameWriter struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

func (fw *frameWriter) frame(event string, data []byte) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if event != "" {
		if _, err := fmt.Fprintf(fw.w, "event: %s\n", event); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(fw.w, "data: %s\n\n", data); err != nil {
		return err
	}
	fw.flusher.Flush()
	return nil
}

func (fw *frameWriter) keepAlive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			fw.mu.Lock()
			_, err := fmt.Fprintf(fw.w, ": keepalive %d\n\n", t.Unix())
			if err == nil {
				fw.flusher.Flush()
			}
			fw.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
