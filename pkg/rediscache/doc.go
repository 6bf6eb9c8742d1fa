// Package rediscache caches policy document snapshots in Redis so that
// fleets of service instances can reload policies without hammering the
// backing store.
//
// The package wraps the go-redis client and adds:
//
//   - Robust Connect which retries the connection using the supplied
//     configuration.
//   - Cache, a policy.DocumentSource decorator storing the JSON snapshot
//     of whatever source it wraps (postgres, mongodb, s3) under a single
//     key with a TTL.
//   - Health-check helpers to integrate Redis into liveness / readiness
//     probes.
//
// Configuration is described by the Config struct whose fields can be
// populated from ACP_REDIS_* environment variables via pkg/config.
//
// # Usage
//
//	client, err := rediscache.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	cache := rediscache.NewCache(client, postgres.NewSource(pool),
//	    rediscache.WithKey(cfg.CacheKey),
//	    rediscache.WithTTL(cfg.CacheTTL),
//	)
//	ac, err := accesscontrol.NewFromSource(ctx, policy.NewSource(cache, registry))
//
// After changing rules, drop the snapshot so the next load sees them:
//
//	if err := cache.Invalidate(ctx); err != nil {
//	    log.Print(err)
//	}
//
// # Failure Behaviour
//
// The cache fails open. Redis being down, or the snapshot being corrupt,
// degrades to loading from the wrapped source directly; both situations are
// logged and never surface as authorization errors. Document fingerprints
// are logged at debug level on every hit and fill, which makes it easy to
// confirm which policy revision an instance is running.
package rediscache
