// Package hooks declares lifecycle hook metadata for hookspec.
//
// A Hook is a named function plus the kinds (phases) it runs in, the
// exclusion groups that keep it from running on some platforms or drivers,
// and an optional retry policy. A Registry keeps hooks ordered by
// declaration so that dispatch for a kind is deterministic.
package hooks
