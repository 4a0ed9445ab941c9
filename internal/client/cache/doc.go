// Package cache is the per-resource store behind the api services.
//
// Each Cache holds entries for one resource type. Entries carry the tags
// they provide, and an explicit tag -> key registry decides which entries a
// mutation marks stale. A stale or expired entry is refetched on next
// access.
package cache
