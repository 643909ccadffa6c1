// Package app assembles the dashboard server: config, logging,
// observability, the pipeline manager, services, and the chi router.
package app
