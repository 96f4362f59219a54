// Package demo holds a catalogue of small flux pipelines over a fixed list
// of names, and the handlers serving them together with the /flux, /mono
// and /stream sample endpoints.
package demo
