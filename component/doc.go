// Package component defines the lifecycle contract shared by the
// infrastructure wrappers (server, database, redis, mongo, kafka) and the
// registry that starts them in order and stops them in reverse.
package component
