// Package api exposes the backend resources through cached services.
//
// Reads go through a per-resource cache.Cache; writes go straight to the
// transport and, on success, invalidate the tags they affect through the
// shared cache.Registry. Workout and feed timestamps are shaped for the
// viewer on read, and workout timestamps are given an offset on write.
package api
