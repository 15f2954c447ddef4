// Package cache provides file-based caching with TTL expiration for SWAPI responses.
//
// SWAPI records change rarely, and a single character page can reference a dozen
// films, starships and vehicles. Caching each resource by URL keeps repeated lookups
// (browsing back and forth between characters, reloading the web page) off the network:
//   - File-based storage in ~/.holocron/cache/
//   - Configurable TTL (default 1 hour) via config file, environment variable, or CLI flag
//   - Expired entries are ignored on read and removed by CleanupExpired
//   - SHA256-based keys derived from the resource URL
package cache
