// Package scraper fetches NFL draft and All-Pro selection tables from Pro
// Football Reference.
//
// Fetching is deliberately slow: a shared rate limiter enforces the polite
// inter-request delay, and a 429 response earns a single long wait before
// one retry. Each scraped year is cached as a raw CSV, and cached years are
// never re-fetched.
package scraper
