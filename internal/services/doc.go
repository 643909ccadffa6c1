// Package services holds the business layer between HTTP transport and the
// data pipeline: analytics over the merged cohort dataset, pipeline run
// orchestration, and health reporting.
package services
