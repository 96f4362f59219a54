// Package movieinfo is the movie-info service: a validated MovieInfo
// record, a Service composing flux tasks and streams over a
// store.AsyncStore, and the Gin handler exposing it under /v1/movieinfos.
//
// Mutations publish movieinfo.created, movieinfo.updated and
// movieinfo.deleted events once the store has succeeded. When an event
// stream is configured, GET /v1/movieinfos/events relays them as
// Server-Sent Events.
package movieinfo
