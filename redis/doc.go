// Package redis provides a go-redis client wrapper with connection
// pooling, component lifecycle and health checks, and an AsyncStore that
// keeps JSON records in a single hash.
//
//	client, err := redis.New(cfg, log)
//	movies := redis.NewStore(client, "movieinfos", movieinfo.Identity)
//
// FindAll walks the hash with HSCAN, so large collections are streamed a
// page at a time.
package redis
