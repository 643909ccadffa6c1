// Package operations runs the draft analytics pipeline as an ordered set of
// steps: scrape, clean, merge, analyze. A Manager executes steps
// sequentially, tracks per-step state, and publishes snapshots after every
// state change so the dashboard can show live progress.
package operations
