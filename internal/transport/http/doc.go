// Package http holds the chi HTTP handlers for the dashboard API: analytics
// queries, pipeline run control, and health checks. Errors are rendered as
// RFC 7807 problem details.
package http
