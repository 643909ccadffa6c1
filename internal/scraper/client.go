package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"draftpulse/internal/config"
)

// ErrTableNotFound is returned when an expected stats table is missing from
// a fetched page, usually because PFR changed its markup or served an
// interstitial page.
var ErrTableNotFound = errors.New("stats table not found")

// ErrRateLimited is returned when PFR keeps answering 429 after the single
// polite retry.
var ErrRateLimited = errors.New("rate limited by server")

// Client fetches pages from Pro Football Reference. A shared rate limiter
// enforces the polite inter-request delay across every fetch, and a single
// retry after RetryWait handles 429 responses.
type Client struct {
	http      *resty.Client
	limiter   *rate.Limiter
	retryWait time.Duration
	logger    *slog.Logger
}

// NewClient creates a PFR client from the scraper configuration.
func NewClient(cfg config.ScraperConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeaders(map[string]string{
			"User-Agent":      cfg.UserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
		})

	return &Client{
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Every(cfg.Delay), 1),
		retryWait: cfg.RetryWait,
		logger:    logger.With(slog.String("component", "pfr_client")),
	}
}

// fetch GETs a path relative to the base URL, waiting for the rate limiter
// first. A 429 gets one retry after retryWait.
func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	body, status, err := c.doFetch(ctx, path)
	if err != nil {
		return "", err
	}
	if status == http.StatusTooManyRequests {
		c.logger.WarnContext(ctx, "received 429, waiting before retry",
			slog.String("path", path),
			slog.Duration("wait", c.retryWait))

		timer := time.NewTimer(c.retryWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}

		body, status, err = c.doFetch(ctx, path)
		if err != nil {
			return "", err
		}
		if status == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", ErrRateLimited, path)
		}
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("unexpected status %d fetching %s", status, path)
	}
	return body, nil
}

func (c *Client) doFetch(ctx context.Context, path string) (string, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", 0, err
	}

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	return resp.String(), resp.StatusCode(), nil
}
