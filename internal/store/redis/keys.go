package redis

import "strings"

const (
	// KeySnapshot holds the last roster loaded from disk, as JSON
	KeySnapshot = "slapp:roster:snapshot"
	// KeyEntities is the set of every player and team id in the snapshot
	KeyEntities = "slapp:roster:entities"
	// KeyPrefixCache is the prefix for cached query matches
	KeyPrefixCache = "slapp:cache:"
	// KeyQueryUsage is the sorted set counting how often each query is asked
	KeyQueryUsage = "slapp:usage:queries"
)

// CacheKey returns the Redis key for a cached match. Queries differing only
// by case or spacing share a key.
func CacheKey(query string) string {
	return KeyPrefixCache + normalizeQuery(query)
}

// EntityMember returns the set member recorded for a player or team id.
func EntityMember(kind, id string) string {
	return kind + ":" + strings.ToLower(id)
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
