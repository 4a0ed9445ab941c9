// Package models defines the records exchanged with the backend.
//
// Records are decoded verbatim; the only client-side additions are the
// *_fmt date bundles attached to workout and feed timestamps.
package models
