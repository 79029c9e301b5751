// Package saga runs multi-step resource orchestrations against the engineering
// data service.
//
// A saga is an ordered list of steps executed one at a time on the calling
// goroutine. Required steps abort the run on failure; optional steps (mostly
// file uploads and dependent deletes) are recorded and skipped past. Resource
// IDs produced by successful steps are collected in a Context that later steps
// read from.
//
// Completed steps are never rolled back. When a required step fails after
// earlier steps created resources, those resources stay behind; their IDs are
// returned in the Composite data and logged.
package saga
