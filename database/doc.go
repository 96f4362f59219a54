// Package database provides a GORM-backed sqlite store with connection
// pooling, health checks, embedded SQL migrations and an AsyncStore
// implementation whose FindAll streams rows as they are scanned.
//
//	db, err := database.New(ctx, cfg, log)
//	movies := database.NewStore(db, movieinfo.Identity, "movieInfo")
//
// Component wraps the connection for the component registry and applies
// migrations on Start.
package database
