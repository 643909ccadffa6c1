// Package config provides centralized configuration and path management for
// the DraftPulse pipeline.
//
// Configuration is loaded from environment variables (DRAFTPULSE_ prefix)
// with an optional draftpulse.yaml file as fallback. Paths centralizes the
// data/raw, data/processed, logs, and web directory layout used by every
// pipeline stage.
package config
