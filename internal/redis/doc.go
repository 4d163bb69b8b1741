// Package redis holds the Redis client setup and the operation store that
// tracks background copy progress. Operation records are hashes with a
// retention TTL; they are ephemeral by design and shared across replicas,
// unlike an in-process map which would vanish on restart.
package redis
