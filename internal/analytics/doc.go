// Package analytics computes All-Pro hit-rate aggregations over the merged
// cohort dataset: per round, per position, position × round pivot, per
// overall pick with rolling smoothing, and the mid-round value table.
package analytics
