// Package cache is a file-backed response cache with per-entry TTL.
//
// Entries live as one JSON file each under the cache directory (by default
// ~/.pokedex/cache). Keys are SHA256 digests of the normalized request, so the
// same list page or detail lookup always lands on the same file. When the
// directory grows past its size cap the oldest entries are evicted first.
package cache
