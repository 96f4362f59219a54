// Package mongo wraps the official MongoDB driver with connection
// lifecycle and health checks, and provides an AsyncStore over a
// collection whose FindAll streams the cursor one document at a time.
package mongo
